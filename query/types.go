// Package query implements the boolean and ranked evaluation engine: the
// scanner and parser that turn a query string into an expression tree, the
// translator that maps lexemes to term-ids, and the AND/OR/CNF/MaxScore
// evaluators that walk posting-list cursors to produce counts or top-K
// scored results.
package query

// TermID is a handle into an external term dictionary.
type TermID uint32

// DocID is a document identifier. Posting lists are sorted in strictly
// increasing DocID order.
type DocID uint64

// NullDoc marks the invalid, "past end" sentinel used by top-K entries.
// It does not appear as a real document id.
const NullDoc DocID = 1<<64 - 1

// DocScore pairs a document id with its score. An entry with DocID ==
// NullDoc is a sentinel and Score is negative infinity.
type DocScore struct {
	DocID DocID
	Score float32
}
