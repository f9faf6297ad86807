package markov

// ModelStats holds aggregated statistics for a single Model.
type ModelStats struct {
	Contexts       int // The number of distinct contexts (stored entries).
	Transitions    int // The number of distinct context->word links.
	TotalFrequency int // The sum of all counts; the total number of trained tokens.
	StartingTokens int // The number of distinct words that follow the empty context.
	Vocabulary     int // The number of distinct words that appear as a successor.
	UsedBuckets    int // The number of buckets holding at least one entry.
	LongestChain   int // The largest number of entries sharing one bucket.
}

// Stats walks the model and returns a snapshot of its statistics.
func (m *Model) Stats() ModelStats {
	var stats ModelStats
	vocab := make(map[string]struct{})
	for _, bucket := range m.buckets {
		if len(bucket) == 0 {
			continue
		}
		stats.UsedBuckets++
		stats.LongestChain = max(stats.LongestChain, len(bucket))
		for _, e := range bucket {
			stats.Contexts++
			stats.Transitions += e.table.Len()
			stats.TotalFrequency += e.table.Total()
			if e.context.Empty() {
				stats.StartingTokens = e.table.Len()
			}
			for word := range e.table.All() {
				vocab[word] = struct{}{}
			}
		}
	}
	stats.Vocabulary = len(vocab)
	return stats
}
