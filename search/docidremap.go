package search

import "github.com/quokkasearch/queryeval/query"

// DocIDRemap packs a segment index and a segment-local doc-id into one
// global doc-id, the same bit-packing scheme the teacher uses to fold
// its (segmentId, localDocId) pairs into a single uint64 (see
// search/index/index_reader.go's ToGlobalDocId/ToSegmentId), generalized
// here from the teacher's random segment-id space to a small ordinal
// segment index since EvaluateMany's segment list is already ordered.
type DocIDRemap struct{}

// ToGlobal packs a (segmentIndex, localDocID) pair into a global DocID.
func (DocIDRemap) ToGlobal(segmentIndex int, localDocID query.DocID) query.DocID {
	return query.DocID(uint64(segmentIndex)<<32 | uint64(localDocID))
}

// SegmentIndex extracts the segment index from a global DocID.
func (DocIDRemap) SegmentIndex(globalDocID query.DocID) int {
	return int(uint64(globalDocID) >> 32)
}

// LocalDocID extracts the segment-local doc-id from a global DocID.
func (DocIDRemap) LocalDocID(globalDocID query.DocID) query.DocID {
	return query.DocID(uint32(globalDocID))
}

// Remap renumbers a relevance list expressed in global doc-ids into one
// relevance list per segment, expressed in that segment's own local
// doc-ids — the old-id-to-new-id step the glue layer applies to a
// caller-supplied relevance list before any of it reaches query.Evaluate,
// since a segment's cursors and relevance-set check only understand
// their own local doc-id space. Global ids outside the segment count are
// dropped rather than erroring.
func (r DocIDRemap) Remap(rel []query.DocID, numSegments int) [][]query.DocID {
	perSegment := make([][]query.DocID, numSegments)
	for _, global := range rel {
		idx := r.SegmentIndex(global)
		if idx < 0 || idx >= numSegments {
			continue
		}
		perSegment[idx] = append(perSegment[idx], r.LocalDocID(global))
	}
	return perSegment
}
