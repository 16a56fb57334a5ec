package query

import "sort"

// evalAnd implements the conjunction evaluator (C5): next_geq alignment
// across N cursors, leader-optimized by sorting cursors by increasing df
// when normalize is on.
func evalAnd(idx Index, wdata WandData, scorer Scorer, terms []TermID, opts Options, topk *TopK) (uint64, uint64, error) {
	ts := terms
	if opts.Normalize {
		ts = normalizeTermIDs(ts)
	}
	if len(ts) == 0 {
		return 0, 0, nil
	}

	cursors := make([]Cursor, 0, len(ts))
	for _, t := range ts {
		c, ok := idx.Cursor(t)
		if !ok {
			// A term with no postings makes the whole conjunction empty.
			return 0, 0, nil
		}
		cursors = append(cursors, c)
	}

	if opts.Normalize {
		sort.Slice(cursors, func(i, j int) bool { return cursors[i].Size() < cursors[j].Size() })
	}

	numDocsTotal := DocID(idx.NumDocs())

	var qWeights []float32
	if opts.Result == Ranked {
		qWeights = make([]float32, len(cursors))
		for i, c := range cursors {
			qWeights[i] = scorer.QueryTermWeight(1, c.Size(), uint64(numDocsTotal))
		}
	}

	var rel *relCursor
	if opts.CheckRel && opts.Result == Count {
		rel = newRelCursor(opts.Rel)
	}

	var count, relCount uint64

	candidate := cursors[0].DocID()
	i := 1

	for candidate < numDocsTotal {
		matchedAll := true

		for ; i < len(cursors); i++ {
			cursors[i].NextGEQ(candidate)
			if cursors[i].DocID() != candidate {
				candidate = cursors[i].DocID()
				i = 0
				matchedAll = false
				break
			}
		}

		if !matchedAll {
			continue
		}

		if opts.Result == Ranked {
			var score float32
			normLen := wdata.NormLen(candidate)
			for k, c := range cursors {
				score += qWeights[k] * scorer.DocTermWeight(c.Freq(), normLen)
			}
			topk.Insert(candidate, score)
		} else {
			count++
			if rel != nil && rel.Count(candidate) {
				relCount++
			}
			if opts.WithFreqs {
				for _, c := range cursors {
					_ = c.Freq()
				}
			}
		}

		cursors[0].Next()
		candidate = cursors[0].DocID()
		i = 1
	}

	return count, relCount, nil
}
