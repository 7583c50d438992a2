package markov

import (
	"log/slog"
)

// Prune removes every link whose count is less than or equal to minFreq.
// This is useful for reducing the size of a model by removing rare, and
// often noisy, transitions. Contexts left without successors are deleted,
// along with any start context that referred to them. Pruning can leave
// successors whose own context is gone; walks that reach one fail with an
// UnknownContextError. Prune is a construction step and returns
// ErrFinalized on a finalized model.
func (m *Model) Prune(minFreq int) (int, error) {
	if m.finalized {
		return 0, ErrFinalized
	}

	removed := 0
	contextsRemoved := 0
	for key, table := range m.links {
		removed += table.prune(minFreq)
		if table.Len() == 0 {
			delete(m.links, key)
			delete(m.windows, key)
			contextsRemoved++
		}
	}

	kept := m.starts[:0]
	for _, start := range m.starts {
		key := start.Key()
		if _, ok := m.links[key]; ok {
			kept = append(kept, start)
			continue
		}
		delete(m.startSet, key)
	}
	clear(m.starts[len(kept):])
	m.starts = kept

	m.logger.Info("Model pruned",
		slog.Int("min_frequency", minFreq),
		slog.Int("chains_removed", removed),
		slog.Int("contexts_removed", contextsRemoved),
		slog.Int("start_contexts", len(m.starts)),
	)
	return removed, nil
}
