package markov

// ModelStats holds aggregated statistics for a single Markov model.
type ModelStats struct {
	Order          int   // Tokens per context.
	Contexts       int   // The number of unique contexts with at least one successor.
	TotalChains    int   // The number of unique context->successor links.
	TotalFrequency int   // The sum of all link counts; the total number of recorded transitions.
	StartContexts  int   // The number of contexts that can begin a sentence.
	VocabSize      int   // The number of unique tokens appearing in contexts or as successors.
	TokensIngested int64 // Normalized tokens read across all corpora.
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	vocab := make(map[string]struct{})
	var chains, freq int
	for key, table := range m.links {
		for _, token := range m.windows[key] {
			vocab[token] = struct{}{}
		}
		for _, s := range table.Successors() {
			vocab[s.Text] = struct{}{}
		}
		chains += table.Len()
		freq += table.Total()
	}

	return ModelStats{
		Order:          m.order,
		Contexts:       len(m.links),
		TotalChains:    chains,
		TotalFrequency: freq,
		StartContexts:  len(m.starts),
		VocabSize:      len(vocab),
		TokensIngested: m.tokens,
	}
}
