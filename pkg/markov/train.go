package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// ingester slides a context window over one corpus. recent holds at most
// order+2 tokens: the token before the window, the window, and its successor.
type ingester struct {
	m           *Model
	recent      []string
	transitions int
}

func (m *Model) newIngester() *ingester {
	return &ingester{m: m, recent: make([]string, 0, m.order+2)}
}

// push adds the next normalized token and records the transition it ends.
func (in *ingester) push(token string) {
	order := in.m.order
	if len(in.recent) == order+2 {
		copy(in.recent, in.recent[1:])
		in.recent = in.recent[:len(in.recent)-1]
	}
	in.recent = append(in.recent, token)
	if len(in.recent) < order+1 {
		return
	}

	n := len(in.recent)
	window := in.recent[n-order-1 : n-1]
	in.m.record(window, token)
	in.transitions++

	// A window directly after a terminal token can open a sentence.
	if n == order+2 && in.m.tokenizer.IsTerminal(in.recent[0]) {
		in.m.addStart(window)
	}
}

func (m *Model) record(window []string, successor string) {
	key := Context(window).Key()
	table, ok := m.links[key]
	if !ok {
		table = &SuccessorTable{}
		m.links[key] = table
		m.windows[key] = Context(slices.Clone(window))
	}
	table.Record(successor)
}

func (m *Model) addStart(window []string) {
	key := Context(window).Key()
	if _, ok := m.startSet[key]; ok {
		return
	}
	m.startSet[key] = struct{}{}
	m.starts = append(m.starts, Context(slices.Clone(window)))
}

// Ingest adds one corpus, given as raw tokens in order, to the model. Each
// token is normalized by the model's tokenizer and dropped if nothing is
// left. Counts accumulate across calls; a context window never spans two
// calls. A corpus shorter than the context window contributes nothing.
func (m *Model) Ingest(tokens []string) error {
	if m.finalized {
		return ErrFinalized
	}
	in := m.newIngester()
	for _, raw := range tokens {
		token := m.tokenizer.Normalize(raw)
		if token == "" {
			continue
		}
		m.tokens++
		in.push(token)
	}

	m.logger.Debug("Corpus ingested",
		slog.Int("tokens", len(tokens)),
		slog.Int("transitions", in.transitions),
		slog.Int("contexts", len(m.links)),
	)
	return nil
}

// Train processes a stream of text from an io.Reader, tokenizes it, and
// ingests it as one corpus with the same semantics as Ingest. If ctx is
// cancelled part way, the transitions read so far remain in the model.
func (m *Model) Train(ctx context.Context, data io.Reader) error {
	if m.finalized {
		return ErrFinalized
	}

	stream := m.tokenizer.NewStream(data)
	in := m.newIngester()
	var tokenCount int64

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("tokenizer error: %w", err)
		}
		tokenCount++
		in.push(token.Text)
	}
	m.tokens += tokenCount

	m.logger.InfoContext(ctx, "Training completed",
		slog.Int("order", m.order),
		slog.Int64("tokens_processed", tokenCount),
		slog.Int("transitions", in.transitions),
		slog.Int("contexts", len(m.links)),
		slog.Int("start_contexts", len(m.starts)),
	)

	return nil
}
