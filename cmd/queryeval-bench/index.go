package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/quokkasearch/queryeval/internal/config"
	"github.com/quokkasearch/queryeval/postings"
	"github.com/quokkasearch/queryeval/query"
)

// tokenize splits a line of text into lowercase whitespace-delimited
// terms. The teacher's own StandardTokenizer (search/index/analysis.go)
// does the equivalent job for its field-based documents; this command
// works over a flat corpus.txt (one document per line) instead, so a
// direct strings.Fields split is enough.
func tokenize(line string) []string {
	fields := strings.Fields(line)
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = strings.ToLower(f)
	}
	return terms
}

func runIndex(cfg config.Config) {
	stop := startCPUProfiler("index.cpu.pprof")
	defer stop()

	if err := os.RemoveAll(cfg.Directory); err != nil {
		log.Fatal(err)
	}

	file, err := os.Open("corpus.txt")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	var docs []postings.Doc
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		docs = append(docs, postings.Doc{Terms: tokenize(scanner.Text())})
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}

	scorer := &query.BM25Scorer{K1: cfg.BM25.K1, B: cfg.BM25.B}
	writer := postings.NewWriter(cfg.Directory)
	if err := writer.Build(docs, scorer); err != nil {
		log.Fatal(err)
	}

	log.Printf("indexed %d documents into %s\n", len(docs), cfg.Directory)
}
