// Package search glues the query evaluators to one or more on-disk
// postings segments, replacing the teacher's Node-tree Search() entry
// point (search.go in this same package, before this rework) with a
// thin adapter around query.Evaluate: segment storage now speaks
// query.Index/query.WandData/query.Dict directly, so there is no
// execution-context/collector machinery left to build.
package search

import (
	"github.com/quokkasearch/queryeval/postings"
	"github.com/quokkasearch/queryeval/query"
)

// Segment bundles one postings segment's index and WAND data, the two
// halves search.Evaluate threads into query.Evaluate.
type Segment struct {
	Index    *postings.Index
	WandData *postings.WandData
}

// Query is a lexeme-level query, resolved against a segment's own
// dictionary independently at Evaluate time. Segments do not share a
// global term-id space (each one assigns ids from its own sorted
// vocabulary, following the teacher's own per-segment
// DictionaryReader), so a query can only be translated once its target
// segment is known, unlike query.Query which is already translated.
type Query struct {
	Terms  []string
	Groups [][]string
	Freqs  []string // for ModeMaxScore; repeats aggregate into higher qf
}

func (q Query) translate(dict query.Dict) query.Query {
	toTerms := func(lexemes []string) []query.Term {
		terms := make([]query.Term, len(lexemes))
		for i, l := range lexemes {
			terms[i] = query.Term{Lexeme: l}
		}
		return terms
	}

	translated := query.Query{
		Terms: query.TranslateFlat(toTerms(q.Terms), dict),
	}

	if len(q.Groups) > 0 {
		groups := make([]query.OrGroup, len(q.Groups))
		for i, g := range q.Groups {
			groups[i] = query.OrGroup{Terms: toTerms(g)}
		}
		translated.Groups = query.TranslateCNF(groups, dict)
	}

	if len(q.Freqs) > 0 {
		translated.Freqs = query.TranslateWithFreqs(toTerms(q.Freqs), dict)
	}

	return translated
}

// Evaluate resolves q against seg's own dictionary and runs it through
// query.Evaluate.
func Evaluate(seg Segment, scorer query.Scorer, q Query, opts query.Options) (query.Outcome, error) {
	var wdata query.WandData
	if seg.WandData != nil {
		wdata = seg.WandData
	}
	return query.Evaluate(seg.Index, wdata, scorer, q.translate(seg.Index), opts)
}
