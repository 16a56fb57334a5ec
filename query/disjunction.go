package query

// evalOr implements the disjunction evaluator (C6): a frontier walk that
// advances every cursor sitting at the current candidate and steps the
// candidate to the minimum doc-id across all cursors.
func evalOr(idx Index, wdata WandData, scorer Scorer, terms []TermID, opts Options, topk *TopK) (uint64, uint64, error) {
	ts := terms
	if opts.Normalize {
		ts = normalizeTermIDs(ts)
	}
	if len(ts) == 0 {
		return 0, 0, nil
	}

	cursors := make([]Cursor, 0, len(ts))
	for _, t := range ts {
		if c, ok := idx.Cursor(t); ok {
			cursors = append(cursors, c)
		}
	}
	if len(cursors) == 0 {
		return 0, 0, nil
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

	cur := numDocsTotal
	for _, c := range cursors {
		if c.DocID() < cur {
			cur = c.DocID()
		}
	}

	var count, relCount uint64

	for cur < numDocsTotal {
		next := numDocsTotal
		var score float32

		if opts.Result == Ranked {
			normLen := wdata.NormLen(cur)
			for i, c := range cursors {
				if c.DocID() == cur {
					score += qWeights[i] * scorer.DocTermWeight(c.Freq(), normLen)
					c.Next()
				}
				if c.DocID() < next {
					next = c.DocID()
				}
			}
			topk.Insert(cur, score)
		} else {
			for _, c := range cursors {
				if c.DocID() == cur {
					if opts.WithFreqs {
						_ = c.Freq()
					}
					c.Next()
				}
				if c.DocID() < next {
					next = c.DocID()
				}
			}
			count++
			if rel != nil && rel.Count(cur) {
				relCount++
			}
		}

		cur = next
	}

	return count, relCount, nil
}
