package markov

// ChainStats holds aggregated statistics for a single chain.
type ChainStats struct {
	Order      int // The number of tokens per key
	Keys       int // The number of unique keys
	Links      int // The total number of key->successor observations, duplicates included
	StartKeys  int // The number of keys generation may start from
	VocabSize  int // The number of unique tokens appearing in keys or successor lists
	MaxFanout  int // The length of the longest successor list
	DeadEndKey Key // The window formed by the final tokens of the source when it is not a key, nil otherwise
}

// Stats returns a snapshot of statistics for the chain.
func (c *Chain) Stats() ChainStats {
	stats := ChainStats{
		Order:     c.order,
		Keys:      len(c.keys),
		StartKeys: len(c.starts),
	}

	vocab := make(map[string]struct{})
	for _, key := range c.keys {
		for _, tok := range key {
			vocab[tok] = struct{}{}
		}
		successors := c.links[key.index()]
		stats.Links += len(successors)
		if len(successors) > stats.MaxFanout {
			stats.MaxFanout = len(successors)
		}
		for _, tok := range successors {
			vocab[tok] = struct{}{}
		}
	}
	stats.VocabSize = len(vocab)

	if c.tail != nil {
		if _, ok := c.links[c.tail.index()]; !ok {
			stats.DeadEndKey = append(Key(nil), c.tail...)
		}
	}

	return stats
}
