package markov

import (
	"context"
	"log/slog"
)

// Stream walks one sentence like GenerateSentence but delivers its tokens on
// a channel as they are sampled. The first token is capitalized and the
// terminal token has EOC set, with a run of trailing terminal marks collapsed
// to one, so the joined tokens equal GenerateSentence's output for the same
// draws. The token channel is closed when the walk ends.
// The error channel then yields the failure, if any, and is closed; a
// cancelled ctx yields ctx.Err(). rng must not be used elsewhere until the
// token channel is closed.
func (m *Model) Stream(ctx context.Context, rng Rand, opts ...GenerateOption) (<-chan Token, <-chan error) {
	options := newGenerateOptions(opts)
	tokenChan := make(chan Token)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		err := m.streamSentence(ctx, rng, options, tokenChan)
		close(tokenChan)
		if err != nil {
			errChan <- err
		}
	}()

	return tokenChan, errChan
}

func (m *Model) streamSentence(ctx context.Context, rng Rand, options *generateOptions, tokenChan chan<- Token) error {
	start, err := m.startContext(rng, options)
	if err != nil {
		return err
	}

	send := func(token Token) error {
		select {
		case <-ctx.Done():
			m.logger.DebugContext(ctx, "Generation stream cancelled by context")
			return ctx.Err()
		case tokenChan <- token:
			return nil
		}
	}

	for i, text := range capitalized(start) {
		eoc := i == len(start)-1 && m.tokenizer.IsTerminal(text)
		if eoc {
			text = m.collapseTerminal(text)
		}
		if err := send(Token{Text: text, EOC: eoc}); err != nil {
			return err
		}
		if eoc {
			return nil
		}
	}

	w := &walker{m: m, rng: rng, cur: start}
	for steps := 0; steps < options.maxSteps; steps++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := w.next()
		if err != nil {
			m.logger.DebugContext(ctx, "Generation stream failed", slog.Any("error", err))
			return err
		}
		eoc := m.tokenizer.IsTerminal(text)
		if eoc {
			text = m.collapseTerminal(text)
		}
		if err := send(Token{Text: text, EOC: eoc}); err != nil {
			return err
		}
		if eoc {
			return nil
		}
	}
	return ErrStepLimit
}
