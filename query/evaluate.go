package query

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Mode selects which strategy evaluates a Query. Unlike the source's two
// mutually exclusive "not set or cnf"/"not set or cnf opt" dispatch
// branches (which made the second unreachable), Mode is an explicit enum
// with no fallthrough-by-absence: every mode is independently reachable.
type Mode int

const (
	ModeAnd Mode = iota
	ModeOr
	ModeCNF
	ModeCNFOptimized
	ModeMaxScore
)

func (m Mode) String() string {
	switch m {
	case ModeAnd:
		return "and"
	case ModeOr:
		return "or"
	case ModeCNF:
		return "cnf"
	case ModeCNFOptimized:
		return "cnf opt"
	case ModeMaxScore:
		return "maxscore"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ResultKind selects between counting matches and ranking them.
type ResultKind int

const (
	Count ResultKind = iota
	Ranked
)

// Options carries the runtime flags that replace the source's
// compile-time bool template parameters (normalize, with_freqs, rank,
// check_rel).
type Options struct {
	Mode      Mode
	Result    ResultKind
	K         int
	Normalize bool
	WithFreqs bool
	CheckRel  bool
	Rel       []DocID
}

// Query carries a translated expression in the shape its Mode expects:
// Terms for ModeAnd/ModeOr, Groups for ModeCNF/ModeCNFOptimized, Freqs
// for ModeMaxScore.
type Query struct {
	Terms  []TermID
	Groups [][]TermID
	Freqs  []TermFreq
}

// Outcome is the result of a single Evaluate call.
type Outcome struct {
	NumReturned    uint64
	NumRelReturned uint64
	HasRel         bool
	TopK           []DocScore
}

// Evaluate dispatches to the evaluator selected by opts.Mode, threading
// the top-K heap and BM25 scorer through it as needed, and returns either
// a match count or a finalized top-K list.
func Evaluate(idx Index, wdata WandData, scorer Scorer, q Query, opts Options) (Outcome, error) {
	if opts.Mode == ModeMaxScore && !opts.Normalize {
		return Outcome{}, fmt.Errorf("%w: maxscore requires normalize", ErrInvalidOption)
	}
	if opts.Mode == ModeMaxScore && opts.Result != Ranked {
		return Outcome{}, fmt.Errorf("%w: maxscore only supports ranked evaluation", ErrInvalidOption)
	}
	if opts.Result == Ranked {
		if opts.K <= 0 {
			return Outcome{}, fmt.Errorf("%w: K must be > 0 for a ranked query", ErrInvalidOption)
		}
		if wdata == nil {
			return Outcome{}, fmt.Errorf("%w: a ranked query requires wand data", ErrInvalidOption)
		}
		if !opts.WithFreqs {
			return Outcome{}, fmt.Errorf("%w: rank requires with_freqs", ErrInvalidOption)
		}
	}
	if opts.CheckRel {
		opts.Rel = normalizeRel(opts.Rel)
	}

	var topk *TopK
	if opts.Result == Ranked {
		topk = NewTopK(opts.K)
	}

	var count, relCount uint64
	var err error

	switch opts.Mode {
	case ModeAnd:
		count, relCount, err = evalAnd(idx, wdata, scorer, q.Terms, opts, topk)
	case ModeOr:
		count, relCount, err = evalOr(idx, wdata, scorer, q.Terms, opts, topk)
	case ModeCNF:
		count, relCount, err = evalCNFBasic(idx, wdata, scorer, q.Groups, opts, topk)
	case ModeCNFOptimized:
		count, relCount, err = evalCNFOptimized(idx, wdata, scorer, q.Groups, opts, topk)
	case ModeMaxScore:
		err = evalMaxScore(idx, wdata, scorer, q.Freqs, topk)
	default:
		return Outcome{}, fmt.Errorf("%w: unknown mode %v", ErrInvalidOption, opts.Mode)
	}
	if err != nil {
		return Outcome{}, err
	}

	if opts.Result == Ranked {
		list := topk.Finalize()
		out := Outcome{NumReturned: uint64(len(list)), TopK: list}

		if opts.CheckRel {
			relSet := roaring64.New()
			for _, d := range opts.Rel {
				relSet.Add(uint64(d))
			}
			var n uint64
			for _, ds := range list {
				if relSet.Contains(uint64(ds.DocID)) {
					n++
				}
			}
			out.NumRelReturned = n
			out.HasRel = true
		}

		return out, nil
	}

	out := Outcome{NumReturned: count}
	if opts.CheckRel {
		out.NumRelReturned = relCount
		out.HasRel = true
	}
	return out, nil
}
