package markov

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSteps bounds a sentence walk when WithMaxSteps is not given.
const DefaultMaxSteps = 10000

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	start    Context
	maxSteps int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like GenerateSentence and Stream.
type GenerateOption func(*generateOptions)

// WithStartContext begins generation from ctx instead of a random start
// context. ctx must have exactly Order tokens.
func WithStartContext(ctx Context) GenerateOption {
	return func(o *generateOptions) { o.start = ctx }
}

// WithMaxSteps sets how many successors a sentence walk may sample before it
// fails with ErrStepLimit. Values below 1 select DefaultMaxSteps. Bounded
// generation ignores it.
func WithMaxSteps(n int) GenerateOption {
	return func(o *generateOptions) { o.maxSteps = n }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.maxSteps < 1 {
		options.maxSteps = DefaultMaxSteps
	}
	return options
}

// PickStartContext returns a uniformly random start context.
func (m *Model) PickStartContext(rng Rand) (Context, error) {
	if len(m.starts) == 0 {
		return nil, ErrNoStartContext
	}
	return slices.Clone(m.starts[rng.IntN(len(m.starts))]), nil
}

// startContext resolves the walk's first context. The result is a private
// copy the walker may advance in place.
func (m *Model) startContext(rng Rand, options *generateOptions) (Context, error) {
	if options.start == nil {
		return m.PickStartContext(rng)
	}
	if len(options.start) != m.order {
		return nil, fmt.Errorf("%w: got %d tokens, want %d", ErrInvalidContext, len(options.start), m.order)
	}
	return slices.Clone(options.start), nil
}

// walker holds the state of one generation walk.
type walker struct {
	m   *Model
	rng Rand
	cur Context
}

// next samples a successor of the current context and advances the context.
func (w *walker) next() (string, error) {
	table, ok := w.m.links[w.cur.Key()]
	if !ok {
		return "", &UnknownContextError{Context: slices.Clone(w.cur)}
	}
	token, err := table.Choose(w.rng)
	if err != nil {
		return "", fmt.Errorf("context %q: %w", w.cur.String(), err)
	}
	w.cur.advance(token)
	return token, nil
}

// GenerateSentence walks the chain from a start context until it samples a
// terminal token and returns the tokens joined by single spaces, with the
// first token capitalized. If the start context already ends in a terminal
// token, the context alone is returned.
func (m *Model) GenerateSentence(rng Rand, opts ...GenerateOption) (string, error) {
	options := newGenerateOptions(opts)
	start, err := m.startContext(rng, options)
	if err != nil {
		return "", err
	}

	out := make([]string, 0, len(start)+16)
	out = append(out, start...)
	if m.tokenizer.IsTerminal(start[len(start)-1]) {
		return m.joinSentence(out), nil
	}

	w := &walker{m: m, rng: rng, cur: start}
	for steps := 0; ; steps++ {
		if steps >= options.maxSteps {
			m.logger.Debug("Generation stopped by step limit",
				slog.Int("max_steps", options.maxSteps),
			)
			return "", fmt.Errorf("%w of %d", ErrStepLimit, options.maxSteps)
		}
		token, err := w.next()
		if err != nil {
			m.logger.Debug("Generation failed",
				slog.Int("generated_length", len(out)),
				slog.Any("error", err),
			)
			return "", err
		}
		out = append(out, token)
		if m.tokenizer.IsTerminal(token) {
			break
		}
	}

	return m.joinSentence(out), nil
}

// GenerateBounded walks exactly maxTokens steps, ignoring terminal tokens
// along the way. The result holds the start context followed by maxTokens
// sampled tokens, with trailing punctuation removed and a single "." added.
// It is meant for titles and other fixed-length output.
func (m *Model) GenerateBounded(rng Rand, maxTokens int, opts ...GenerateOption) (string, error) {
	if maxTokens < 0 {
		return "", fmt.Errorf("%w: max tokens %d", ErrInvalidLength, maxTokens)
	}
	options := newGenerateOptions(opts)
	start, err := m.startContext(rng, options)
	if err != nil {
		return "", err
	}

	out := make([]string, 0, len(start)+maxTokens)
	out = append(out, start...)

	w := &walker{m: m, rng: rng, cur: start}
	for remaining := maxTokens; remaining > 0; remaining-- {
		token, err := w.next()
		if err != nil {
			m.logger.Debug("Bounded generation failed",
				slog.Int("generated_length", len(out)),
				slog.Any("error", err),
			)
			return "", err
		}
		out = append(out, token)
	}

	text := strings.Join(capitalized(out), " ")
	text = strings.TrimRightFunc(text, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	return text + ".", nil
}

// GenerateParagraph joins count sentences with single spaces. A start
// context given with WithStartContext applies to the first sentence only.
func (m *Model) GenerateParagraph(rng Rand, count int, opts ...GenerateOption) (string, error) {
	if count < 0 {
		return "", fmt.Errorf("%w: sentence count %d", ErrInvalidLength, count)
	}
	sentences := make([]string, 0, count)
	for i := range count {
		sentenceOpts := opts
		if i > 0 {
			sentenceOpts = append(slices.Clip(opts), WithStartContext(nil))
		}
		sentence, err := m.GenerateSentence(rng, sentenceOpts...)
		if err != nil {
			return "", fmt.Errorf("sentence %d: %w", i+1, err)
		}
		sentences = append(sentences, sentence)
	}
	return strings.Join(sentences, " "), nil
}

// joinSentence joins tokens and collapses a run of terminal marks at the end
// into the last one.
func (m *Model) joinSentence(tokens []string) string {
	out := capitalized(tokens)
	if n := len(out); n > 0 {
		out[n-1] = m.collapseTerminal(out[n-1])
	}
	return strings.Join(out, " ")
}

// collapseTerminal replaces a run of terminal marks ending token with its
// final mark, so "broth.." becomes "broth.".
func (m *Model) collapseTerminal(token string) string {
	last, size := utf8.DecodeLastRuneInString(token)
	if size == 0 {
		return token
	}
	trimmed := strings.TrimRightFunc(token, func(r rune) bool {
		return m.tokenizer.IsTerminal(string(r))
	})
	if len(trimmed) < len(token) {
		return trimmed + string(last)
	}
	return token
}

// capitalized returns tokens with the first rune of the first token upper-cased.
func capitalized(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	out := slices.Clone(tokens)
	r, size := utf8.DecodeRuneInString(out[0])
	if r != utf8.RuneError {
		out[0] = string(unicode.ToUpper(r)) + out[0][size:]
	}
	return out
}
