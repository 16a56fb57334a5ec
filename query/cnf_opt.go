package query

import "sort"

// evalCNFOptimized implements the optimized CNF evaluator (C8): groups are
// ordered by total posting volume, a group is skipped entirely for the
// current candidate as soon as one of its cursors matches, and a mismatch
// advances the candidate to the minimum within the mismatched group
// rather than the maximum across groups.
func evalCNFOptimized(idx Index, wdata WandData, scorer Scorer, groups [][]TermID, opts Options, topk *TopK) (uint64, uint64, error) {
	gs := groups
	if opts.Normalize {
		gs = normalizeCNFGroups(gs)
	}
	if len(gs) == 0 {
		return 0, 0, nil
	}

	groupCursors := make([][]Cursor, 0, len(gs))
	for _, g := range gs {
		cs := make([]Cursor, 0, len(g))
		for _, t := range g {
			if c, ok := idx.Cursor(t); ok {
				cs = append(cs, c)
			}
		}
		if len(cs) == 0 {
			return 0, 0, nil
		}
		groupCursors = append(groupCursors, cs)
	}

	if opts.Normalize {
		volume := make([]uint64, len(groupCursors))
		for i, cs := range groupCursors {
			var v uint64
			for _, c := range cs {
				v += c.Size()
			}
			volume[i] = v
		}
		order := make([]int, len(groupCursors))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return volume[order[a]] < volume[order[b]] })

		sorted := make([][]Cursor, len(groupCursors))
		for i, gi := range order {
			sorted[i] = groupCursors[gi]
		}
		groupCursors = sorted
	}

	numGroups := len(groupCursors)

	// groupStart has one extra trailing sentinel slot beyond the usual
	// numGroups+1 so that groupStart[numGroupsMatched+1] stays in bounds
	// even when numGroupsMatched has just been bumped to numGroups (the
	// single-remaining-group restart case below).
	groupStart := make([]int, numGroups+2)
	E := make([]Cursor, 0, numGroups)
	for g, cs := range groupCursors {
		groupStart[g] = len(E)
		E = append(E, cs...)
	}
	groupStart[numGroups] = len(E)
	groupStart[numGroups+1] = len(E)

	numTerms := len(E)
	numDocsTotal := DocID(idx.NumDocs())

	var qWeights []float32
	if opts.Result == Ranked {
		qWeights = make([]float32, numTerms)
		for i, c := range E {
			qWeights[i] = scorer.QueryTermWeight(1, c.Size(), uint64(numDocsTotal))
		}
	}

	var rel *relCursor
	if opts.CheckRel && opts.Result == Count {
		rel = newRelCursor(opts.Rel)
	}

	candidate := E[groupStart[0]].DocID()
	for i := groupStart[0] + 1; i < groupStart[1]; i++ {
		if E[i].DocID() < candidate {
			candidate = E[i].DocID()
		}
	}

	var count, relCount uint64
	numGroupsMatched := 0
	k := 0

	for candidate < numDocsTotal {
		kEnd := groupStart[numGroupsMatched+1]
		for k < kEnd {
			E[k].NextGEQ(candidate)
			if E[k].DocID() == candidate {
				numGroupsMatched++
				k = groupStart[numGroupsMatched]
				kEnd = groupStart[numGroupsMatched+1]
			} else {
				k++
			}
		}

		if numGroupsMatched == numGroups {
			for i := 0; i < numTerms; i++ {
				E[i].NextGEQ(candidate)
			}

			if opts.Result == Ranked {
				var score float32
				normLen := wdata.NormLen(candidate)
				for i := 0; i < numTerms; i++ {
					if E[i].DocID() == candidate {
						score += qWeights[i] * scorer.DocTermWeight(E[i].Freq(), normLen)
					}
				}
				topk.Insert(candidate, score)
			} else {
				count++
				if rel != nil && rel.Count(candidate) {
					relCount++
				}
				if opts.WithFreqs {
					for i := 0; i < numTerms; i++ {
						if E[i].DocID() == candidate {
							_ = E[i].Freq()
						}
					}
				}
			}

			nextDocid := numDocsTotal
			for i := groupStart[0]; i < groupStart[1]; i++ {
				d := E[i].DocID()
				if d == candidate {
					E[i].Next()
					d = E[i].DocID()
				}
				if d < nextDocid {
					nextDocid = d
				}
			}
			candidate = nextDocid
			k = groupStart[1]
			numGroupsMatched = 1
		} else {
			nextDocid := numDocsTotal
			for i := groupStart[numGroupsMatched]; i < groupStart[numGroupsMatched+1]; i++ {
				if E[i].DocID() < nextDocid {
					nextDocid = E[i].DocID()
				}
			}
			candidate = nextDocid

			if numGroupsMatched == 0 {
				k = groupStart[1]
				numGroupsMatched = 1
			} else {
				k = 0
				numGroupsMatched = 0
			}
		}
	}

	return count, relCount, nil
}
