package query

import "math"

// TopK is a fixed-capacity binary min-heap of DocScore entries, keyed on
// score. It starts fully populated with invalid sentinel entries so that
// WouldEnter/Insert never need a separate "heap not yet full" branch.
type TopK struct {
	entries []DocScore
}

var negInf = float32(math.Inf(-1))

// NewTopK creates a top-K heap of capacity k. k must be >= 1.
func NewTopK(k int) *TopK {
	entries := make([]DocScore, k)
	for i := range entries {
		entries[i] = DocScore{DocID: NullDoc, Score: negInf}
	}
	return &TopK{entries: entries}
}

// WouldEnter reports whether a document scoring s would be admitted by
// Insert. Constant time, no side effects.
func (t *TopK) WouldEnter(s float32) bool {
	return s > t.entries[0].Score
}

// Insert admits (d, s) if s is strictly greater than the current minimum,
// replacing the root and sifting down. Ties with the current minimum do
// not displace it. Returns whether the entry was admitted.
func (t *TopK) Insert(d DocID, s float32) bool {
	if s <= t.entries[0].Score {
		return false
	}

	t.entries[0] = DocScore{DocID: d, Score: s}
	t.percolateDown(0)
	return true
}

func (t *TopK) percolateDown(i int) {
	n := len(t.entries)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i

		if left < n && t.entries[left].Score < t.entries[smallest].Score {
			smallest = left
		}
		if right < n && t.entries[right].Score < t.entries[smallest].Score {
			smallest = right
		}
		if smallest == i {
			return
		}

		t.entries[i], t.entries[smallest] = t.entries[smallest], t.entries[i]
		i = smallest
	}
}

// Finalize compacts out sentinel entries by swap-with-last-and-shrink,
// leaving a dense slice of the admitted entries in heap order. Safe to
// call more than once.
func (t *TopK) Finalize() []DocScore {
	n := len(t.entries)
	for i := 0; i < n; {
		if t.entries[i].DocID == NullDoc {
			n--
			t.entries[i] = t.entries[n]
			continue
		}
		i++
	}
	t.entries = t.entries[:n]
	return t.entries
}

// GetList returns the heap's current contents in heap order (unspecified
// with respect to score).
func (t *TopK) GetList() []DocScore {
	return t.entries
}
