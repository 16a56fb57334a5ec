package query

// Dict maps lexemes to term-ids. Implementations are the external
// segment-to-term-id dictionary; Lookup reports false for lexemes absent
// from the dictionary, which the translator silently drops.
type Dict interface {
	Lookup(lexeme string) (TermID, bool)
}

// TranslateFlat maps a flat term list through dict, silently dropping any
// lexeme not present in it.
func TranslateFlat(terms []Term, dict Dict) []TermID {
	ids := make([]TermID, 0, len(terms))
	for _, t := range terms {
		if id, ok := dict.Lookup(t.Lexeme); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// TranslateCNF maps each OR group through dict independently, dropping any
// group that becomes empty after translation. An empty result is legal:
// the evaluator returns 0 hits for it.
func TranslateCNF(groups []OrGroup, dict Dict) [][]TermID {
	result := make([][]TermID, 0, len(groups))
	for _, g := range groups {
		ids := TranslateFlat(g.Terms, dict)
		if len(ids) == 0 {
			continue
		}
		result = append(result, ids)
	}
	return result
}

// TermFreq pairs a term-id with the number of times its lexeme occurred in
// the source query (qf). Only MaxScore threads real qf values; C5-C8
// evaluators always use qf=1 for each distinct term after dedup.
type TermFreq struct {
	Term TermID
	QF   uint32
}

// TranslateWithFreqs aggregates repeated lexeme occurrences into
// (term-id, qf) pairs, in order of first occurrence, dropping lexemes
// absent from dict.
func TranslateWithFreqs(terms []Term, dict Dict) []TermFreq {
	counts := make(map[TermID]uint32, len(terms))
	order := make([]TermID, 0, len(terms))

	for _, t := range terms {
		id, ok := dict.Lookup(t.Lexeme)
		if !ok {
			continue
		}
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}

	result := make([]TermFreq, len(order))
	for i, id := range order {
		result[i] = TermFreq{Term: id, QF: counts[id]}
	}
	return result
}
