package search

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/quokkasearch/queryeval/query"
	"golang.org/x/sync/errgroup"
)

// EvaluateMany runs q against every segment concurrently and merges the
// per-segment outcomes into one, remapping each segment's local doc-ids
// to global ones via DocIDRemap. Grounded on the fan-out-then-merge
// shape a multi-segment IndexReader needs (the teacher's own
// IndexReader loops sequentially over SegmentReaders in Search()); the
// concurrent fan-out itself is a supplemented feature, using
// golang.org/x/sync/errgroup the way a searcher spanning many segments
// would.
func EvaluateMany(segments []Segment, scorer query.Scorer, q Query, opts query.Options) (query.Outcome, error) {
	remap := DocIDRemap{}

	var relBySegment [][]query.DocID
	if opts.CheckRel {
		relBySegment = remap.Remap(opts.Rel, len(segments))
	}

	outcomes := make([]query.Outcome, len(segments))

	g := new(errgroup.Group)
	for i, seg := range segments {
		i, seg := i, seg
		segOpts := opts
		if opts.CheckRel {
			segOpts.Rel = relBySegment[i]
		}
		g.Go(func() error {
			out, err := Evaluate(seg, scorer, q, segOpts)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return query.Outcome{}, err
	}

	merged := query.Outcome{HasRel: opts.CheckRel}

	if opts.Result == query.Ranked {
		var all []query.DocScore
		for segIdx, out := range outcomes {
			for _, ds := range out.TopK {
				all = append(all, query.DocScore{
					DocID: remap.ToGlobal(segIdx, ds.DocID),
					Score: ds.Score,
				})
			}
		}

		sort.Slice(all, func(i, j int) bool { return all[i].Score > all[j].Score })
		if opts.K > 0 && len(all) > opts.K {
			all = all[:opts.K]
		}

		merged.TopK = all
		merged.NumReturned = uint64(len(all))

		if opts.CheckRel {
			// Per-segment NumRelReturned counts hits in that segment's own
			// local top-K, before the global merge truncates to K. Summing
			// those would double-count docs from segments that lost the
			// merge, so relevance is recounted against the final,
			// already-truncated global doc-ids instead.
			relSet := roaring64.New()
			for _, d := range opts.Rel {
				relSet.Add(uint64(d))
			}
			var n uint64
			for _, ds := range all {
				if relSet.Contains(uint64(ds.DocID)) {
					n++
				}
			}
			merged.NumRelReturned = n
		}

		return merged, nil
	}

	for _, out := range outcomes {
		merged.NumReturned += out.NumReturned
		merged.NumRelReturned += out.NumRelReturned
	}

	return merged, nil
}
