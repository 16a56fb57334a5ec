package postings

import (
	"encoding/binary"
	"os"

	"github.com/edsrzf/mmap-go"
)

// WandDataWriter records, per term-id, the maximum BM25 doc-side weight
// any posting for that term can contribute, and, per doc-id, its BM25
// length norm. Grounded on the teacher's FieldLengthNorms (which
// precomputes length-id -> norm tables) generalized into the two flat
// arrays the query package's WandData interface expects.
type WandDataWriter struct {
	maxWeightFile *os.File
	normLenFile   *os.File
}

func newWandDataWriter(maxWeightPath, normLenPath string) (*WandDataWriter, error) {
	maxWeightFile, err := createFile(maxWeightPath)
	if err != nil {
		return nil, err
	}
	normLenFile, err := createFile(normLenPath)
	if err != nil {
		maxWeightFile.Close()
		return nil, err
	}
	return &WandDataWriter{maxWeightFile: maxWeightFile, normLenFile: normLenFile}, nil
}

func (w *WandDataWriter) AppendMaxWeight(weight float32) error {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32frombits(weight))
	_, err := w.maxWeightFile.Write(buf)
	return err
}

func (w *WandDataWriter) AppendNormLen(normLen float32) error {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32frombits(normLen))
	_, err := w.normLenFile.Write(buf)
	return err
}

func (w *WandDataWriter) Close() error {
	if err := w.maxWeightFile.Close(); err != nil {
		_ = w.normLenFile.Close()
		return err
	}
	return w.normLenFile.Close()
}

// WandDataReader reads two mmap-backed flat float32 arrays, indexed
// positionally by term-id and doc-id respectively. The WandData type in
// index.go adapts it to the query.WandData interface.
type WandDataReader struct {
	maxWeight mmap.MMap
	normLen   mmap.MMap

	maxWeightFile *os.File
	normLenFile   *os.File
}

func newWandDataReader(maxWeightPath, normLenPath string) (*WandDataReader, error) {
	maxWeightFile, err := os.Open(maxWeightPath)
	if err != nil {
		return nil, err
	}
	maxWeight, err := mmap.Map(maxWeightFile, mmap.RDONLY, 0)
	if err != nil {
		_ = maxWeightFile.Close()
		return nil, err
	}

	normLenFile, err := os.Open(normLenPath)
	if err != nil {
		_ = maxWeightFile.Close()
		return nil, err
	}
	normLen, err := mmap.Map(normLenFile, mmap.RDONLY, 0)
	if err != nil {
		_ = maxWeightFile.Close()
		_ = normLenFile.Close()
		return nil, err
	}

	return &WandDataReader{
		maxWeight:     maxWeight,
		normLen:       normLen,
		maxWeightFile: maxWeightFile,
		normLenFile:   normLenFile,
	}, nil
}

func (r *WandDataReader) MaxTermWeight(termID uint32) float32 {
	offset := uint64(termID) * 4
	return float32frombits(binary.BigEndian.Uint32(r.maxWeight[offset : offset+4]))
}

func (r *WandDataReader) NormLen(docID uint64) float32 {
	offset := docID * 4
	return float32frombits(binary.BigEndian.Uint32(r.normLen[offset : offset+4]))
}

func (r *WandDataReader) Close() error {
	if err := r.maxWeightFile.Close(); err != nil {
		_ = r.normLenFile.Close()
		return err
	}
	return r.normLenFile.Close()
}
