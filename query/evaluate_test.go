package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRankedRequiresPositiveK(t *testing.T) {
	idx := newMockIndex(10, map[TermID][]DocID{1: {1, 2}})
	wdata := newMockWandData()

	_, err := Evaluate(idx, wdata, mockScorer{}, Query{Terms: []TermID{1}}, Options{
		Mode: ModeAnd, Result: Ranked, K: 0, Normalize: true,
	})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestEvaluateRankedRequiresWandData(t *testing.T) {
	idx := newMockIndex(10, map[TermID][]DocID{1: {1, 2}})

	_, err := Evaluate(idx, nil, mockScorer{}, Query{Terms: []TermID{1}}, Options{
		Mode: ModeAnd, Result: Ranked, K: 5, Normalize: true,
	})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestEvaluateUnknownModeIsRejected(t *testing.T) {
	idx := newMockIndex(10, map[TermID][]DocID{1: {1, 2}})

	_, err := Evaluate(idx, nil, mockScorer{}, Query{Terms: []TermID{1}}, Options{
		Mode: Mode(99), Result: Count, Normalize: true,
	})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestEvaluateCountPathHasNoTopK(t *testing.T) {
	idx := newMockIndex(10, map[TermID][]DocID{1: {1, 2, 3}})

	out, err := Evaluate(idx, nil, mockScorer{}, Query{Terms: []TermID{1}}, Options{
		Mode: ModeAnd, Result: Count, Normalize: true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.NumReturned)
	assert.Nil(t, out.TopK)
	assert.False(t, out.HasRel)
}

func TestEvaluateRankedPathPopulatesTopK(t *testing.T) {
	idx := newMockIndex(10, map[TermID][]DocID{1: {1, 2, 3}})
	wdata := newMockWandData()

	out, err := Evaluate(idx, wdata, mockScorer{}, Query{Terms: []TermID{1}}, Options{
		Mode: ModeAnd, Result: Ranked, K: 2, Normalize: true, WithFreqs: true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.NumReturned)
	assert.Len(t, out.TopK, 2)
}

// Invariant #8 - a rel-checked query never reports more relevant hits than
// were both requested as relevant and actually returned.
func TestEvaluateNumRelReturnedNeverExceedsBounds(t *testing.T) {
	idx := newMockIndex(10, map[TermID][]DocID{
		1: {1, 2, 3, 4, 5, 6},
	})
	wdata := newMockWandData()

	out, err := Evaluate(idx, wdata, mockScorer{}, Query{Terms: []TermID{1}}, Options{
		Mode: ModeAnd, Result: Ranked, K: 3, Normalize: true, WithFreqs: true,
		CheckRel: true, Rel: []DocID{2, 4, 9},
	})
	require.NoError(t, err)
	assert.True(t, out.HasRel)
	assert.LessOrEqual(t, out.NumRelReturned, uint64(len(out.TopK)))
	assert.LessOrEqual(t, out.NumRelReturned, uint64(3))
}

func TestEvaluateRankedRequiresWithFreqs(t *testing.T) {
	idx := newMockIndex(10, map[TermID][]DocID{1: {1, 2}})
	wdata := newMockWandData()

	_, err := Evaluate(idx, wdata, mockScorer{}, Query{Terms: []TermID{1}}, Options{
		Mode: ModeAnd, Result: Ranked, K: 5, Normalize: true,
	})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestEvaluateCheckRelCountModeUsesStreamingCursor(t *testing.T) {
	idx := newMockIndex(20, map[TermID][]DocID{
		1: {1, 2, 3, 4, 5},
		2: {2, 3, 4, 5, 6},
	})

	out, err := Evaluate(idx, nil, mockScorer{}, Query{Terms: []TermID{1, 2}}, Options{
		Mode: ModeOr, Result: Count, Normalize: true,
		CheckRel: true, Rel: []DocID{3, 3, 5, 100},
	})
	require.NoError(t, err)
	assert.True(t, out.HasRel)
	assert.EqualValues(t, 2, out.NumRelReturned)
}
