package query

// Cursor is a stateful, read-only position over one term's posting list.
// Implementations are borrowed from the index for the duration of one
// evaluator call; DocID reports NumDocs of the owning index once the
// cursor is exhausted.
type Cursor interface {
	// DocID returns the current document id, or the index's NumDocs when
	// the cursor is exhausted.
	DocID() DocID

	// Freq returns the term frequency at the current document. Valid only
	// when the cursor is not exhausted.
	Freq() uint64

	// Size returns the document frequency (df) of the term: the total
	// number of postings.
	Size() uint64

	// Next advances by one posting. Returns false if the cursor is now
	// exhausted.
	Next() bool

	// NextGEQ advances to the smallest document id >= d. Idempotent when
	// the cursor already sits at or past d. Returns false if the cursor is
	// now exhausted.
	NextGEQ(d DocID) bool
}

// Index exposes per-term posting-list cursors. Implementations are
// read-only and safely shared by concurrent evaluator calls.
type Index interface {
	NumDocs() uint64
	Cursor(term TermID) (Cursor, bool)
}

// WandData exposes the precomputed per-term maximum weights and per-doc
// length norms consumed by the ranked evaluators.
type WandData interface {
	MaxTermWeight(term TermID) float32
	NormLen(doc DocID) float32
}
