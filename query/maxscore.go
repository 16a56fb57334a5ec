package query

import "sort"

type scoredCursor struct {
	cursor    Cursor
	qWeight   float32
	maxWeight float32
}

// evalMaxScore implements the MaxScore top-K ranker (C9): cursors are
// sorted by increasing per-term upper-bound weight, split into an
// "essential" suffix and a "non-essential" prefix whose prefix-sum upper
// bound can no longer lift a candidate into the top-K, and the
// non-essential prefix is scanned downward only while it still could.
func evalMaxScore(idx Index, wdata WandData, scorer Scorer, freqs []TermFreq, topk *TopK) error {
	if len(freqs) == 0 {
		return nil
	}

	numDocsTotal := DocID(idx.NumDocs())

	scored := make([]scoredCursor, 0, len(freqs))
	for _, tf := range freqs {
		c, ok := idx.Cursor(tf.Term)
		if !ok {
			continue
		}
		qw := scorer.QueryTermWeight(tf.QF, c.Size(), uint64(numDocsTotal))
		mw := qw * wdata.MaxTermWeight(tf.Term)
		scored = append(scored, scoredCursor{cursor: c, qWeight: qw, maxWeight: mw})
	}
	if len(scored) == 0 {
		return nil
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].maxWeight < scored[j].maxWeight })

	upperBounds := make([]float32, len(scored))
	upperBounds[0] = scored[0].maxWeight
	for i := 1; i < len(scored); i++ {
		upperBounds[i] = upperBounds[i-1] + scored[i].maxWeight
	}

	nonEssential := 0
	curDoc := scored[0].cursor.DocID()
	for _, s := range scored[1:] {
		if s.cursor.DocID() < curDoc {
			curDoc = s.cursor.DocID()
		}
	}

	for nonEssential < len(scored) && curDoc < numDocsTotal {
		var score float32
		normLen := wdata.NormLen(curDoc)
		nextDoc := numDocsTotal

		for i := nonEssential; i < len(scored); i++ {
			s := &scored[i]
			if s.cursor.DocID() == curDoc {
				score += s.qWeight * scorer.DocTermWeight(s.cursor.Freq(), normLen)
				s.cursor.Next()
			}
			if s.cursor.DocID() < nextDoc {
				nextDoc = s.cursor.DocID()
			}
		}

		// Downscan the non-essential prefix from nonEssential-1 to 0,
		// guarded so nonEssential==0 iterates zero times instead of
		// underflowing an unsigned index.
		for i := nonEssential; i > 0; i-- {
			j := i - 1
			if !topk.WouldEnter(score + upperBounds[j]) {
				break
			}
			scored[j].cursor.NextGEQ(curDoc)
			if scored[j].cursor.DocID() == curDoc {
				score += scored[j].qWeight * scorer.DocTermWeight(scored[j].cursor.Freq(), normLen)
			}
		}

		if topk.Insert(curDoc, score) {
			for nonEssential < len(scored) && !topk.WouldEnter(upperBounds[nonEssential]) {
				nonEssential++
			}
		}

		curDoc = nextDoc
	}

	return nil
}
