package query

import "math"

type mockCursor struct {
	docIds  []DocID
	freqs   []uint64
	numDocs uint64
	pos     int
}

func newMockCursor(numDocs uint64, docIds []DocID, freqs []uint64) *mockCursor {
	return &mockCursor{docIds: docIds, freqs: freqs, numDocs: numDocs}
}

func (c *mockCursor) DocID() DocID {
	if c.pos >= len(c.docIds) {
		return DocID(c.numDocs)
	}
	return c.docIds[c.pos]
}

func (c *mockCursor) Freq() uint64 {
	return c.freqs[c.pos]
}

func (c *mockCursor) Size() uint64 {
	return uint64(len(c.docIds))
}

func (c *mockCursor) Next() bool {
	if c.pos < len(c.docIds) {
		c.pos++
	}
	return c.pos < len(c.docIds)
}

func (c *mockCursor) NextGEQ(d DocID) bool {
	for c.pos < len(c.docIds) && c.docIds[c.pos] < d {
		c.pos++
	}
	return c.pos < len(c.docIds)
}

// mockIndex maps a term-id to a fixed doc-id list, with a term frequency
// of 1 at every posting unless overridden via withFreqs.
type mockIndex struct {
	numDocs uint64
	lists   map[TermID][]DocID
	freqs   map[TermID][]uint64
}

func newMockIndex(numDocs uint64, lists map[TermID][]DocID) *mockIndex {
	return &mockIndex{numDocs: numDocs, lists: lists}
}

func (idx *mockIndex) withFreqs(freqs map[TermID][]uint64) *mockIndex {
	idx.freqs = freqs
	return idx
}

func (idx *mockIndex) NumDocs() uint64 {
	return idx.numDocs
}

func (idx *mockIndex) Cursor(t TermID) (Cursor, bool) {
	docIds, ok := idx.lists[t]
	if !ok || len(docIds) == 0 {
		return nil, false
	}

	freqs, ok := idx.freqs[t]
	if !ok {
		freqs = make([]uint64, len(docIds))
		for i := range freqs {
			freqs[i] = 1
		}
	}

	return newMockCursor(idx.numDocs, docIds, freqs), true
}

// mockWandData returns a max term weight of 1 for every term and a
// norm_len of 1 for every document, unless overridden.
type mockWandData struct {
	maxWeight map[TermID]float32
	normLen   map[DocID]float32
}

func newMockWandData() *mockWandData {
	return &mockWandData{}
}

func (w *mockWandData) MaxTermWeight(t TermID) float32 {
	if w.maxWeight != nil {
		if v, ok := w.maxWeight[t]; ok {
			return v
		}
	}
	return 1
}

func (w *mockWandData) NormLen(d DocID) float32 {
	if w.normLen != nil {
		if v, ok := w.normLen[d]; ok {
			return v
		}
	}
	return 1
}

// mockDict is a plain map-backed dictionary.
type mockDict map[string]TermID

func (d mockDict) Lookup(lexeme string) (TermID, bool) {
	id, ok := d[lexeme]
	return id, ok
}

// mockScorer implements the deterministic tf/(1+norm_len), qw=log(N/df)
// scorer suggested for concrete scenarios.
type mockScorer struct{}

func (mockScorer) QueryTermWeight(qf uint32, df uint64, numDocs uint64) float32 {
	return float32(math.Log(float64(numDocs)/float64(df))) * float32(qf)
}

func (mockScorer) DocTermWeight(tf uint64, normLen float32) float32 {
	return float32(tf) / (1 + normLen)
}
