package query

import "math"

// DefaultK1 and DefaultB are the standard BM25 saturation/length-norm
// parameters used by NewBM25Scorer. postings.Writer.Build precomputes
// wand-data with whichever Scorer it is given.
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

// Scorer exposes the two pure functions the ranked evaluators (C5-C9)
// consume polymorphically. Implementations must be deterministic and
// stateless: the evaluators rely on repeated calls with the same inputs
// producing the same output.
type Scorer interface {
	// QueryTermWeight produces the idf-like query-side weight for a term
	// with query frequency qf and document frequency df, over a
	// collection of numDocs documents.
	QueryTermWeight(qf uint32, df uint64, numDocs uint64) float32

	// DocTermWeight produces the saturating document-side weight for a
	// posting with term frequency tf in a document of normalized length
	// normLen.
	DocTermWeight(tf uint64, normLen float32) float32
}

// BM25Scorer is the standard Robertson/Sparck-Jones BM25 scorer.
type BM25Scorer struct {
	K1 float32
	B  float32
}

// NewBM25Scorer returns a BM25Scorer using DefaultK1/DefaultB.
func NewBM25Scorer() *BM25Scorer {
	return &BM25Scorer{K1: DefaultK1, B: DefaultB}
}

func (s *BM25Scorer) QueryTermWeight(qf uint32, df uint64, numDocs uint64) float32 {
	idf := math.Log(1.0 + (float64(numDocs)-float64(df)+0.5)/(float64(df)+0.5))
	return float32(idf) * float32(qf)
}

func (s *BM25Scorer) DocTermWeight(tf uint64, normLen float32) float32 {
	k1 := float64(s.K1)
	b := float64(s.B)
	f := float64(tf)
	denom := f + k1*(1-b+b*float64(normLen))
	if denom == 0 {
		return 0
	}
	return float32((f * (k1 + 1)) / denom)
}
