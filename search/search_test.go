package search_test

import (
	"path/filepath"
	"testing"

	"github.com/quokkasearch/queryeval/postings"
	"github.com/quokkasearch/queryeval/query"
	"github.com/quokkasearch/queryeval/search"
	"github.com/stretchr/testify/require"
)

func buildSegment(t *testing.T, dir string, docs []postings.Doc) search.Segment {
	t.Helper()

	scorer := query.NewBM25Scorer()
	writer := postings.NewWriter(dir)
	require.NoError(t, writer.Build(docs, scorer))

	idx, err := postings.OpenIndex(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	wdata, err := postings.OpenWandData(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wdata.Close() })

	return search.Segment{Index: idx, WandData: wdata}
}

func tokenize(words ...string) postings.Doc {
	return postings.Doc{Terms: words}
}

func TestEvaluateSingleSegmentBooleanAnd(t *testing.T) {
	dir := t.TempDir()
	seg := buildSegment(t, filepath.Join(dir, "s0"), []postings.Doc{
		tokenize("hello", "world", "business"),
		tokenize("local", "business", "closes"),
		tokenize("apple", "orange", "car"),
	})

	scorer := query.NewBM25Scorer()

	out, err := search.Evaluate(seg, scorer, search.Query{Terms: []string{"world", "business"}}, query.Options{
		Mode: query.ModeAnd, Result: query.Count, Normalize: true,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, out.NumReturned)
}

func TestEvaluateUnknownLexemeYieldsNoMatches(t *testing.T) {
	dir := t.TempDir()
	seg := buildSegment(t, filepath.Join(dir, "s0"), []postings.Doc{
		tokenize("hello", "world"),
	})

	scorer := query.NewBM25Scorer()

	out, err := search.Evaluate(seg, scorer, search.Query{Terms: []string{"nowhere"}}, query.Options{
		Mode: query.ModeOr, Result: query.Count, Normalize: true,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, out.NumReturned)
}

func TestEvaluateManyMergesAcrossSegments(t *testing.T) {
	dir := t.TempDir()
	seg0 := buildSegment(t, filepath.Join(dir, "s0"), []postings.Doc{
		tokenize("hello", "world"),
		tokenize("hello", "there"),
	})
	seg1 := buildSegment(t, filepath.Join(dir, "s1"), []postings.Doc{
		tokenize("hello", "again"),
	})

	scorer := query.NewBM25Scorer()

	merged, err := search.EvaluateMany([]search.Segment{seg0, seg1}, scorer, search.Query{Terms: []string{"hello"}}, query.Options{
		Mode: query.ModeOr, Result: query.Ranked, K: 5, Normalize: true, WithFreqs: true,
	})
	require.NoError(t, err)

	require.EqualValues(t, 3, merged.NumReturned)
	require.LessOrEqual(t, len(merged.TopK), 5)
}

func TestEvaluateManyRelevanceListIsRemappedPerSegment(t *testing.T) {
	dir := t.TempDir()
	seg0 := buildSegment(t, filepath.Join(dir, "s0"), []postings.Doc{
		tokenize("apple"),
		tokenize("apple", "banana"),
	})
	seg1 := buildSegment(t, filepath.Join(dir, "s1"), []postings.Doc{
		tokenize("apple"),
	})

	scorer := query.NewBM25Scorer()
	remap := search.DocIDRemap{}

	// Mark only seg1's single document (local doc-id 0) as relevant, using
	// the global id EvaluateMany's own TopK would report for it.
	rel := []query.DocID{remap.ToGlobal(1, 0)}

	merged, err := search.EvaluateMany([]search.Segment{seg0, seg1}, scorer, search.Query{Terms: []string{"apple"}}, query.Options{
		Mode: query.ModeOr, Result: query.Count, Normalize: true,
		CheckRel: true, Rel: rel,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, merged.NumReturned)
	require.True(t, merged.HasRel)
	require.EqualValues(t, 1, merged.NumRelReturned)
}

func TestEvaluateManyRankedRelevanceCountRespectsGlobalTruncation(t *testing.T) {
	dir := t.TempDir()
	// Each segment's single document is its own local top-1 match and its
	// own local relevant hit, but only one of the two can survive a
	// global merge truncated to K=1.
	seg0 := buildSegment(t, filepath.Join(dir, "s0"), []postings.Doc{
		tokenize("apple", "apple", "apple"),
	})
	seg1 := buildSegment(t, filepath.Join(dir, "s1"), []postings.Doc{
		tokenize("apple"),
	})

	scorer := query.NewBM25Scorer()
	remap := search.DocIDRemap{}
	rel := []query.DocID{remap.ToGlobal(0, 0), remap.ToGlobal(1, 0)}

	merged, err := search.EvaluateMany([]search.Segment{seg0, seg1}, scorer, search.Query{Terms: []string{"apple"}}, query.Options{
		Mode: query.ModeOr, Result: query.Ranked, K: 1, Normalize: true, WithFreqs: true,
		CheckRel: true, Rel: rel,
	})
	require.NoError(t, err)
	require.Len(t, merged.TopK, 1)
	require.EqualValues(t, 1, merged.NumRelReturned)
}

func TestDocIDRemapRoundTripsSegmentAndLocalID(t *testing.T) {
	remap := search.DocIDRemap{}

	global := remap.ToGlobal(3, 42)
	require.Equal(t, 3, remap.SegmentIndex(global))
	require.EqualValues(t, 42, remap.LocalDocID(global))
}

func TestDocIDRemapDropsOutOfRangeSegments(t *testing.T) {
	remap := search.DocIDRemap{}

	rel := []query.DocID{remap.ToGlobal(0, 1), remap.ToGlobal(5, 2)}
	perSegment := remap.Remap(rel, 2)

	require.Len(t, perSegment, 2)
	require.Equal(t, []query.DocID{1}, perSegment[0])
	require.Empty(t, perSegment[1])
}

func TestEvaluateManyCountModeSumsAcrossSegments(t *testing.T) {
	dir := t.TempDir()
	seg0 := buildSegment(t, filepath.Join(dir, "s0"), []postings.Doc{
		tokenize("apple"),
		tokenize("apple", "banana"),
	})
	seg1 := buildSegment(t, filepath.Join(dir, "s1"), []postings.Doc{
		tokenize("apple"),
	})

	scorer := query.NewBM25Scorer()

	merged, err := search.EvaluateMany([]search.Segment{seg0, seg1}, scorer, search.Query{Terms: []string{"apple"}}, query.Options{
		Mode: query.ModeAnd, Result: query.Count, Normalize: true,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, merged.NumReturned)
}
