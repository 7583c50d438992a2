package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// DefaultOrder is the context window size used when WithOrder is not given.
const DefaultOrder = 2

// Model is a word-level Markov chain. It maps every observed context to the
// table of tokens that followed it, and tracks the contexts that may begin a
// sentence.
//
// A Model is built in two phases. While building, Ingest, Train and Prune
// mutate it and must not be called concurrently. After Finalize it is
// read-only, and generation methods may be called from many goroutines as
// long as each uses its own Rand.
type Model struct {
	order     int
	tokenizer Tokenizer
	links     map[string]*SuccessorTable
	windows   map[string]Context // context tokens by key
	starts    []Context
	startSet  map[string]struct{}
	tokens    int64
	finalized bool
	logger    *slog.Logger
}

// ModelOption is a function that configures a Model at construction.
type ModelOption func(*Model)

// WithOrder sets the number of preceding tokens that form a context.
// Default: 2
func WithOrder(n int) ModelOption {
	return func(m *Model) { m.order = n }
}

// WithTokenizer sets the tokenizer used to normalize and split corpora.
// Default: NewDefaultTokenizer()
func WithTokenizer(t Tokenizer) ModelOption {
	return func(m *Model) {
		if t != nil {
			m.tokenizer = t
		}
	}
}

// WithLogger sets the logger at construction, see SetLogger.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) { m.SetLogger(logger) }
}

// NewModel creates an empty, unfinalized Model.
func NewModel(opts ...ModelOption) (*Model, error) {
	m := &Model{
		order:     DefaultOrder,
		tokenizer: NewDefaultTokenizer(),
		links:     make(map[string]*SuccessorTable),
		windows:   make(map[string]Context),
		startSet:  make(map[string]struct{}),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.order < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, m.order)
	}
	return m, nil
}

// Build is a convenience that ingests each token sequence as its own corpus,
// in order, and returns the finalized model.
func Build(corpora [][]string, opts ...ModelOption) (*Model, error) {
	m, err := NewModel(opts...)
	if err != nil {
		return nil, err
	}
	for _, tokens := range corpora {
		if err := m.Ingest(tokens); err != nil {
			return nil, err
		}
	}
	m.Finalize()
	return m, nil
}

// BuildFromReaders trains a new model on each reader in order and returns it
// finalized. Each reader is one corpus; windows never span two readers.
func BuildFromReaders(ctx context.Context, readers []io.Reader, opts ...ModelOption) (*Model, error) {
	m, err := NewModel(opts...)
	if err != nil {
		return nil, err
	}
	for i, r := range readers {
		if err := m.Train(ctx, r); err != nil {
			return nil, fmt.Errorf("corpus %d: %w", i, err)
		}
	}
	m.Finalize()
	return m, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Finalize builds the sampling expansion of every successor table and marks
// the model read-only. It is idempotent.
func (m *Model) Finalize() {
	if m.finalized {
		return
	}
	for _, table := range m.links {
		table.finalize()
	}
	m.finalized = true

	m.logger.Info("Model finalized",
		slog.Int("order", m.order),
		slog.Int("contexts", len(m.links)),
		slog.Int("start_contexts", len(m.starts)),
		slog.Int64("tokens_ingested", m.tokens),
	)
}

// Finalized reports whether Finalize has been called.
func (m *Model) Finalized() bool {
	return m.finalized
}

// Order returns the number of tokens in every context of the model.
func (m *Model) Order() int {
	return m.order
}

// Tokenizer returns the tokenizer the model was built with.
func (m *Model) Tokenizer() Tokenizer {
	return m.tokenizer
}

// Successors returns the table of tokens observed after ctx. The table must
// be treated as read-only.
func (m *Model) Successors(ctx Context) (*SuccessorTable, bool) {
	table, ok := m.links[ctx.Key()]
	return table, ok
}

// StartContexts returns a copy of the start-context set in first-seen order.
func (m *Model) StartContexts() []Context {
	out := make([]Context, len(m.starts))
	for i, c := range m.starts {
		out[i] = slices.Clone(c)
	}
	return out
}

// IsStartContext reports whether ctx may begin a sentence.
func (m *Model) IsStartContext(ctx Context) bool {
	_, ok := m.startSet[ctx.Key()]
	return ok
}
