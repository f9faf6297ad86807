package markov

import "iter"

// wordCount is one word of a FrequencyTable together with how often it was seen.
type wordCount struct {
	word  string
	count int
}

// FrequencyTable counts the words observed after a single Context. Words keep
// their insertion order so that a weighted draw walks them deterministically
// for a given random value. Every word in the table has a count of at least 1.
type FrequencyTable struct {
	counts []wordCount
	index  map[string]int
	total  int
}

// newFrequencyTable returns a table that already holds word once. Tables are
// never created empty.
func newFrequencyTable(word string) *FrequencyTable {
	t := &FrequencyTable{index: make(map[string]int, 1)}
	t.addWordN(word, 1)
	return t
}

// AddWord increments the count for word, inserting it with a count of 1 if it
// has not been seen before.
func (t *FrequencyTable) AddWord(word string) {
	t.addWordN(word, 1)
}

func (t *FrequencyTable) addWordN(word string, n int) {
	if i, ok := t.index[word]; ok {
		t.counts[i].count += n
	} else {
		t.index[word] = len(t.counts)
		t.counts = append(t.counts, wordCount{word: word, count: n})
	}
	t.total += n
}

// Count returns how many times word was observed, or 0.
func (t *FrequencyTable) Count(word string) int {
	if i, ok := t.index[word]; ok {
		return t.counts[i].count
	}
	return 0
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int {
	return t.total
}

// Len returns the number of distinct words.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}

// All iterates over every (word, count) pair in insertion order.
func (t *FrequencyTable) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, wc := range t.counts {
			if !yield(wc.word, wc.count) {
				return
			}
		}
	}
}

// Draw picks a word with probability proportional to its count. The table
// must not be empty; tables reachable through a Model never are.
func (t *FrequencyTable) Draw(src Source) string {
	r := src.IntN(t.total)
	for _, wc := range t.counts {
		if r < wc.count {
			return wc.word
		}
		r -= wc.count
	}
	// Unreachable while total matches the counts.
	return t.counts[len(t.counts)-1].word
}
