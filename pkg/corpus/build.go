package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/Cookery/pkg/markov"
)

// BuildChain trains a new model on every corpus of every source, in order,
// and returns it finalized.
func BuildChain(ctx context.Context, sources []Source, logger *slog.Logger, opts ...markov.ModelOption) (*markov.Model, error) {
	model, err := trainChain(ctx, sources, logger, opts...)
	if err != nil {
		return nil, err
	}
	model.Finalize()
	return model, nil
}

// trainChain returns the model unfinalized so callers can prune it first.
func trainChain(ctx context.Context, sources []Source, logger *slog.Logger, opts ...markov.ModelOption) (*markov.Model, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	model, err := markov.NewModel(append([]markov.ModelOption{markov.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}

	for _, src := range sources {
		corpora := 0
		err := src.Each(ctx, func(name string, r io.Reader) error {
			corpora++
			if err := model.Train(ctx, r); err != nil {
				return fmt.Errorf("training on %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name(), err)
		}
		logger.DebugContext(ctx, "Source ingested",
			slog.String("source", src.Name()),
			slog.Int("corpora", corpora),
		)
	}
	return model, nil
}

// BuildChains builds one finalized model per chain in the manifest. opts
// apply to every chain; a chain's own order overrides WithOrder, and its
// min_frequency prunes the model before it is finalized.
func BuildChains(ctx context.Context, m *Manifest, logger *slog.Logger, opts ...markov.ModelOption) (map[string]*markov.Model, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	models := make(map[string]*markov.Model, len(m.Chains))
	for _, name := range m.ChainNames() {
		spec := m.Chains[name]
		sources, err := m.Sources(name)
		if err != nil {
			return nil, err
		}
		chainOpts := opts
		if spec.Order > 0 {
			chainOpts = append(chainOpts[:len(chainOpts):len(chainOpts)], markov.WithOrder(spec.Order))
		}

		chainLogger := logger.With(slog.String("chain", name))
		model, err := trainChain(ctx, sources, chainLogger, chainOpts...)
		if err != nil {
			return nil, fmt.Errorf("chain '%s': %w", name, err)
		}
		if spec.MinFrequency > 0 {
			if _, err := model.Prune(spec.MinFrequency); err != nil {
				return nil, fmt.Errorf("chain '%s': %w", name, err)
			}
		}
		model.Finalize()

		stats := model.Stats()
		chainLogger.InfoContext(ctx, "Chain built",
			slog.Int("order", stats.Order),
			slog.Int("contexts", stats.Contexts),
			slog.Int("start_contexts", stats.StartContexts),
			slog.Int("vocab_size", stats.VocabSize),
		)
		models[name] = model
	}
	return models, nil
}
