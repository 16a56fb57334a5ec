package postings

import (
	"bufio"
	"encoding/binary"
	"os"
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/quokkasearch/queryeval/query"
)

// PostingListWriter appends one delta-varint-encoded block per term to a
// shared postings file, returning each block's byte range so the
// locations store can point straight at it. Unlike the teacher's
// FieldFreqsWriter, a term's whole posting list is a single block: this
// package is a minimal single-segment demo writer, not a general
// multi-block skip-list indexer.
type PostingListWriter struct {
	file   *os.File
	writer *bufio.Writer
	offset uint64
}

func newPostingListWriter(path string) (*PostingListWriter, error) {
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	return &PostingListWriter{file: file, writer: bufio.NewWriter(file)}, nil
}

// WriteTerm writes docIds (sorted ascending) and their per-doc term
// frequencies, and returns the [start, end) byte range of the block.
func (w *PostingListWriter) WriteTerm(docIds []uint64, freqs []uint64) (uint64, uint64, error) {
	start := w.offset

	buffer := make([]byte, 0, len(docIds)*4)
	buffer = binary.AppendUvarint(buffer, uint64(len(docIds)))

	var prev uint64
	for i, d := range docIds {
		if i == 0 {
			buffer = binary.AppendUvarint(buffer, d)
		} else {
			buffer = binary.AppendUvarint(buffer, d-prev)
		}
		prev = d
	}
	for _, f := range freqs {
		buffer = binary.AppendUvarint(buffer, f)
	}

	n, err := w.writer.Write(buffer)
	if err != nil {
		return 0, 0, err
	}
	w.offset += uint64(n)

	return start, w.offset, nil
}

func (w *PostingListWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}

// decodePostingList reads a term's block back into plain doc-id and
// frequency slices. Blocks are small enough in this single-segment
// writer that eager decode-on-open is simpler than the teacher's
// lazy per-block iterator, at the cost of not supporting multi-block
// skipping.
func decodePostingList(data []byte, numDocs uint64) ([]uint64, []uint64) {
	docIds := make([]uint64, 0, numDocs)
	freqs := make([]uint64, 0, numDocs)

	pos := 0
	readUvarint := func() uint64 {
		v, n := binary.Uvarint(data[pos:])
		pos += n
		return v
	}

	count := readUvarint()
	var prev uint64
	for i := uint64(0); i < count; i++ {
		delta := readUvarint()
		if i == 0 {
			prev = delta
		} else {
			prev += delta
		}
		docIds = append(docIds, prev)
	}
	for i := uint64(0); i < count; i++ {
		freqs = append(freqs, readUvarint())
	}

	return docIds, freqs
}

// segmentCursor implements query.Cursor over a decoded posting list,
// transparently skipping doc-ids present in a per-segment deleted
// bitmap (grounded on the teacher's deleted-doc filtering, folded here
// directly into cursor advancement instead of a separate merge step).
type segmentCursor struct {
	docIds  []uint64
	freqs   []uint64
	numDocs uint64
	deleted *roaring64.Bitmap
	pos     int
}

func newSegmentCursor(docIds, freqs []uint64, numDocs uint64, deleted *roaring64.Bitmap) *segmentCursor {
	c := &segmentCursor{docIds: docIds, freqs: freqs, numDocs: numDocs, deleted: deleted}
	c.skipDeleted()
	return c
}

func (c *segmentCursor) skipDeleted() {
	for c.pos < len(c.docIds) && c.deleted != nil && c.deleted.Contains(c.docIds[c.pos]) {
		c.pos++
	}
}

func (c *segmentCursor) DocID() query.DocID {
	if c.pos >= len(c.docIds) {
		return query.DocID(c.numDocs)
	}
	return query.DocID(c.docIds[c.pos])
}

func (c *segmentCursor) Freq() uint64 {
	return c.freqs[c.pos]
}

func (c *segmentCursor) Size() uint64 {
	return uint64(len(c.docIds))
}

func (c *segmentCursor) Next() bool {
	if c.pos < len(c.docIds) {
		c.pos++
		c.skipDeleted()
	}
	return c.pos < len(c.docIds)
}

func (c *segmentCursor) NextGEQ(d query.DocID) bool {
	target := uint64(d)
	c.pos += sort.Search(len(c.docIds)-c.pos, func(i int) bool {
		return c.docIds[c.pos+i] >= target
	})
	c.skipDeleted()
	return c.pos < len(c.docIds)
}
