package query

import "sort"

// evalCNFBasic implements the basic CNF evaluator (C7): an AND of OR
// groups using per-group mismatch tracking. Groups are scanned in flat
// order; a group is marked matched the first time one of its cursors sits
// at the candidate doc-id, and scanning aborts as soon as the running
// matched-group count falls behind the group currently being scanned.
func evalCNFBasic(idx Index, wdata WandData, scorer Scorer, groups [][]TermID, opts Options, topk *TopK) (uint64, uint64, error) {
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
			// An OR group with no live postings can never match: the AND
			// of it with anything else is empty.
			return 0, 0, nil
		}
		groupCursors = append(groupCursors, cs)
	}

	if opts.Normalize {
		for _, cs := range groupCursors {
			sort.Slice(cs, func(i, j int) bool { return cs[i].Size() > cs[j].Size() })
		}
		sort.Slice(groupCursors, func(i, j int) bool { return groupCursors[i][0].Size() < groupCursors[j][0].Size() })
	}

	numGroups := len(groupCursors)
	E := make([]Cursor, 0, numGroups)
	posToGroup := make([]int, 0, numGroups)
	for g, cs := range groupCursors {
		for range cs {
			posToGroup = append(posToGroup, g)
		}
		E = append(E, cs...)
	}
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

	candidate := groupCursors[0][0].DocID()
	for _, c := range groupCursors[0][1:] {
		if c.DocID() < candidate {
			candidate = c.DocID()
		}
	}

	matches := make([]int, numTerms)
	groupsMinDocid := make([]DocID, numGroups)

	var count, relCount uint64

	for candidate < numDocsTotal {
		numMatches := 0
		numGroupsMatched := 0
		lastGroup := -1

		for k := 0; k < numTerms; k++ {
			group := posToGroup[k]
			if numGroupsMatched < group {
				break
			}
			if lastGroup != group {
				groupsMinDocid[group] = numDocsTotal
				lastGroup = group
			}

			E[k].NextGEQ(candidate)
			d := E[k].DocID()

			if d == candidate {
				matches[numMatches] = k
				numMatches++
				if numGroupsMatched == group {
					numGroupsMatched++
				}
			} else if d < groupsMinDocid[group] {
				groupsMinDocid[group] = d
			}
		}

		if numGroupsMatched == numGroups {
			if opts.Result == Ranked {
				var score float32
				normLen := wdata.NormLen(candidate)
				for i := 0; i < numMatches; i++ {
					k := matches[i]
					score += qWeights[k] * scorer.DocTermWeight(E[k].Freq(), normLen)
				}
				topk.Insert(candidate, score)
			} else {
				count++
				if rel != nil && rel.Count(candidate) {
					relCount++
				}
				if opts.WithFreqs {
					for i := 0; i < numMatches; i++ {
						_ = E[matches[i]].Freq()
					}
				}
			}

			for i := 0; i < numMatches; i++ {
				k := matches[i]
				g := posToGroup[k]
				E[k].Next()
				if d := E[k].DocID(); d < groupsMinDocid[g] {
					groupsMinDocid[g] = d
				}
			}

			nextDocid := DocID(0)
			for g := 0; g < numGroups; g++ {
				if groupsMinDocid[g] > nextDocid {
					nextDocid = groupsMinDocid[g]
				}
			}
			candidate = nextDocid
		} else {
			candidate = groupsMinDocid[numGroupsMatched]
		}
	}

	return count, relCount, nil
}
