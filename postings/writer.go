package postings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/quokkasearch/queryeval/query"
	"golang.org/x/exp/rand"
)

// Doc is one document's tokenized field contents, keyed by lexeme
// occurrence: repeated lexemes contribute repeated entries, exactly as
// AddDocuments' tokenizer loop feeds terms to the teacher's
// InvertedIndexWriter one at a time.
type Doc struct {
	Terms []string
}

// Writer builds a single on-disk segment from an in-memory document
// set. It is a minimal demo writer grounded on the teacher's
// IndexWriter/InvertedIndexWriter pair, generalized to also assign
// term-ids and precompute BM25 WAND data; it does not support
// incremental commits, multiple segments, or merges, which the
// teacher's IndexWriter does via its commit file and segment-id
// scheme.
type Writer struct {
	directory string
	segmentID uint32
}

// NewWriter creates a Writer for a fresh segment directory. The
// segment-id is only used for diagnostics (it has no merge role in
// this single-segment writer), generated the same way the teacher
// generates its own: golang.org/x/exp/rand.Uint32.
func NewWriter(directory string) *Writer {
	return &Writer{directory: directory, segmentID: rand.Uint32()}
}

// Build takes docs already tokenized into lexemes by the caller,
// assigns doc-ids in slice order, and writes the dictionary,
// posting lists, WAND data and manifest for the segment.
func (w *Writer) Build(docs []Doc, scorer query.Scorer) error {
	if err := os.MkdirAll(w.directory, 0700); err != nil {
		return err
	}

	postingsByTerm := map[string]map[uint64]uint64{}
	docLengths := make([]uint64, len(docs))

	for docID, doc := range docs {
		docLengths[docID] = uint64(len(doc.Terms))
		for _, lexeme := range doc.Terms {
			byDoc, ok := postingsByTerm[lexeme]
			if !ok {
				byDoc = map[uint64]uint64{}
				postingsByTerm[lexeme] = byDoc
			}
			byDoc[uint64(docID)]++
		}
	}

	lexemes := make([]string, 0, len(postingsByTerm))
	for lexeme := range postingsByTerm {
		lexemes = append(lexemes, lexeme)
	}
	sort.Strings(lexemes)

	var avgLength float64
	for _, l := range docLengths {
		avgLength += float64(l)
	}
	if len(docLengths) > 0 {
		avgLength /= float64(len(docLengths))
	}

	dictWriter, err := newDictionaryWriter(filepath.Join(w.directory, "dictionary"))
	if err != nil {
		return err
	}
	locWriter, err := newLocationsWriter(filepath.Join(w.directory, "locations"))
	if err != nil {
		return err
	}
	postWriter, err := newPostingListWriter(filepath.Join(w.directory, "postings.data"))
	if err != nil {
		return err
	}
	wandWriter, err := newWandDataWriter(
		filepath.Join(w.directory, "wand.maxweight"),
		filepath.Join(w.directory, "wand.normlen"),
	)
	if err != nil {
		return err
	}

	numDocs := uint64(len(docs))

	for _, lexeme := range lexemes {
		byDoc := postingsByTerm[lexeme]

		docIds := make([]uint64, 0, len(byDoc))
		for d := range byDoc {
			docIds = append(docIds, d)
		}
		sort.Slice(docIds, func(i, j int) bool { return docIds[i] < docIds[j] })

		freqs := make([]uint64, len(docIds))
		var maxWeight float32
		for i, d := range docIds {
			tf := byDoc[d]
			freqs[i] = tf

			normLen := float32(0)
			if avgLength > 0 {
				normLen = float32(float64(docLengths[d]) / avgLength)
			}
			docWeight := scorer.DocTermWeight(tf, normLen)
			if docWeight > maxWeight {
				maxWeight = docWeight
			}
		}

		blockStart, blockEnd, err := postWriter.WriteTerm(docIds, freqs)
		if err != nil {
			return err
		}

		if _, err := dictWriter.Write(lexeme); err != nil {
			return err
		}
		if err := locWriter.Append(locationRecord{
			DocFreq:    uint64(len(docIds)),
			BlockStart: blockStart,
			BlockEnd:   blockEnd,
		}); err != nil {
			return err
		}

		if err := wandWriter.AppendMaxWeight(maxWeight); err != nil {
			return err
		}
	}

	for docID := range docs {
		normLen := float32(0)
		if avgLength > 0 {
			normLen = float32(float64(docLengths[docID]) / avgLength)
		}
		if err := wandWriter.AppendNormLen(normLen); err != nil {
			return err
		}
	}

	if err := dictWriter.Close(); err != nil {
		return err
	}
	if err := locWriter.Close(); err != nil {
		return err
	}
	if err := postWriter.Close(); err != nil {
		return err
	}
	if err := wandWriter.Close(); err != nil {
		return err
	}

	manifestBytes, err := json.Marshal(manifest{NumDocs: numDocs})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.directory, "manifest.json"), manifestBytes, 0600)
}
