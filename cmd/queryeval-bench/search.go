package main

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/quokkasearch/queryeval/internal/config"
	"github.com/quokkasearch/queryeval/postings"
	"github.com/quokkasearch/queryeval/query"
	"github.com/quokkasearch/queryeval/search"
)

const repetitions = 10

// benchQuery is one line of queries.txt: an optional "mode:" prefix
// (and, or, cnf, cnfopt, maxscore — defaults to and) followed by the
// query text in the wire syntax query.ParseAnd/ParseOr/ParseCNF expect.
type benchQuery struct {
	mode query.Mode
	text string
}

func parseBenchLine(line string) benchQuery {
	prefix, rest, ok := strings.Cut(line, ":")
	if !ok {
		return benchQuery{mode: query.ModeAnd, text: line}
	}

	switch strings.TrimSpace(prefix) {
	case "and":
		return benchQuery{mode: query.ModeAnd, text: rest}
	case "or":
		return benchQuery{mode: query.ModeOr, text: rest}
	case "cnf":
		return benchQuery{mode: query.ModeCNF, text: rest}
	case "cnfopt":
		return benchQuery{mode: query.ModeCNFOptimized, text: rest}
	case "maxscore":
		return benchQuery{mode: query.ModeMaxScore, text: rest}
	default:
		return benchQuery{mode: query.ModeAnd, text: line}
	}
}

func loadBenchQueries(path string) ([]benchQuery, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var queries []benchQuery
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		queries = append(queries, parseBenchLine(line))
	}
	return queries, scanner.Err()
}

func toSearchQuery(mode query.Mode, text string) (search.Query, error) {
	switch mode {
	case query.ModeAnd:
		expr, err := query.ParseAnd(text)
		if err != nil {
			return search.Query{}, err
		}
		return search.Query{Terms: lexemes(expr.Terms)}, nil
	case query.ModeOr:
		expr, err := query.ParseOr(text)
		if err != nil {
			return search.Query{}, err
		}
		return search.Query{Terms: lexemes(expr.Terms)}, nil
	case query.ModeMaxScore:
		expr, err := query.ParseOr(text)
		if err != nil {
			return search.Query{}, err
		}
		return search.Query{Freqs: lexemes(expr.Terms)}, nil
	default:
		expr, err := query.ParseCNF(text)
		if err != nil {
			return search.Query{}, err
		}
		groups := make([][]string, len(expr.Groups))
		for i, g := range expr.Groups {
			groups[i] = lexemes(g.Terms)
		}
		return search.Query{Groups: groups}, nil
	}
}

func lexemes(terms []query.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Lexeme
	}
	return out
}

// runOnce times a single evaluation, discarding results but forcing the
// call to actually run so the compiler can't elide it.
func runOnce(seg search.Segment, scorer query.Scorer, q search.Query, opts query.Options) (time.Duration, error) {
	start := time.Now()
	_, err := search.Evaluate(seg, scorer, q, opts)
	return time.Since(start), err
}

func runSearch(cfg config.Config) {
	stop := startCPUProfiler("search.cpu.pprof")
	defer stop()

	idx, err := postings.OpenIndex(cfg.Directory)
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	wdata, err := postings.OpenWandData(cfg.Directory)
	if err != nil {
		log.Fatal(err)
	}
	defer wdata.Close()

	seg := search.Segment{Index: idx, WandData: wdata}
	scorer := &query.BM25Scorer{K1: cfg.BM25.K1, B: cfg.BM25.B}

	queries, err := loadBenchQueries("queries.txt")
	if err != nil {
		log.Fatal(err)
	}

	for _, bq := range queries {
		translated, err := toSearchQuery(bq.mode, bq.text)
		if err != nil {
			log.Printf("skipping %q: %v\n", bq.text, err)
			continue
		}

		opts := query.Options{Mode: bq.mode, Result: query.Count, Normalize: true}
		if bq.mode == query.ModeMaxScore {
			opts.Result = query.Ranked
			opts.K = cfg.DefaultK
			opts.WithFreqs = true
		}

		// Warm-up pass, not timed: mirrors the original's two-pass
		// discipline of running the query once to fault pages in
		// before recording any timings.
		if _, err := runOnce(seg, scorer, translated, opts); err != nil {
			log.Printf("query %q failed: %v\n", bq.text, err)
			continue
		}

		best := time.Duration(math.MaxInt64)
		for i := 0; i < repetitions; i++ {
			elapsed, err := runOnce(seg, scorer, translated, opts)
			if err != nil {
				log.Printf("query %q failed: %v\n", bq.text, err)
				break
			}
			if elapsed < best {
				best = elapsed
			}
		}

		fmt.Printf("%-40q %-10s %d us\n", bq.text, bq.mode, best.Microseconds())
	}
}
