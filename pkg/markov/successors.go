package markov

import (
	"math/rand/v2"
)

// Rand is the source of randomness used for sampling. *math/rand/v2.Rand
// satisfies it. Implementations are not expected to be safe for concurrent
// use, so every goroutine generating text needs its own.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed source seeded with seed, for reproducible
// output.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Successor is one entry of a SuccessorTable.
type Successor struct {
	Text  string
	Count int
}

// SuccessorTable counts the tokens observed immediately after one context.
// The zero value is an empty table ready for use.
type SuccessorTable struct {
	counts map[string]int
	order  []string // first-seen order, keeps sampling reproducible
	total  int
	flat   []string // one entry per occurrence, built by finalize
}

// Record increments the count of successor, creating it at 1 if absent.
func (s *SuccessorTable) Record(successor string) {
	if s.counts == nil {
		s.counts = make(map[string]int)
	}
	if _, ok := s.counts[successor]; !ok {
		s.order = append(s.order, successor)
	}
	s.counts[successor]++
	s.total++
	s.flat = nil
}

// Choose returns a successor picked with probability proportional to its
// count. It draws exactly one value from rng, and a finalized table returns
// the same successor for a given draw as an unfinalized one. Choose never
// modifies the table.
func (s *SuccessorTable) Choose(rng Rand) (string, error) {
	if s.total == 0 {
		return "", ErrEmptyTable
	}
	n := rng.IntN(s.total)
	if s.flat != nil {
		return s.flat[n], nil
	}
	for _, text := range s.order {
		n -= s.counts[text]
		if n < 0 {
			return text, nil
		}
	}
	return "", ErrEmptyTable
}

// Count returns how many times successor was recorded.
func (s *SuccessorTable) Count(successor string) int {
	return s.counts[successor]
}

// Total returns the number of recorded transitions.
func (s *SuccessorTable) Total() int {
	return s.total
}

// Len returns the number of distinct successors.
func (s *SuccessorTable) Len() int {
	return len(s.order)
}

// Successors returns every successor with its count, in first-seen order.
func (s *SuccessorTable) Successors() []Successor {
	out := make([]Successor, 0, len(s.order))
	for _, text := range s.order {
		out = append(out, Successor{Text: text, Count: s.counts[text]})
	}
	return out
}

// Finalized reports whether the flat expansion is current.
func (s *SuccessorTable) Finalized() bool {
	return s.flat != nil
}

// finalize builds the flat expansion used by Choose.
func (s *SuccessorTable) finalize() {
	if s.flat != nil || s.total == 0 {
		return
	}
	flat := make([]string, 0, s.total)
	for _, text := range s.order {
		for range s.counts[text] {
			flat = append(flat, text)
		}
	}
	s.flat = flat
}

// prune removes successors seen minFreq times or fewer and returns how many
// distinct successors were dropped.
func (s *SuccessorTable) prune(minFreq int) int {
	kept := s.order[:0]
	removed := 0
	for _, text := range s.order {
		c := s.counts[text]
		if c <= minFreq {
			delete(s.counts, text)
			s.total -= c
			removed++
			continue
		}
		kept = append(kept, text)
	}
	s.order = kept
	if removed > 0 {
		s.flat = nil
	}
	return removed
}
