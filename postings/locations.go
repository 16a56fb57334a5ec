package postings

import (
	"encoding/binary"
	"os"

	"github.com/edsrzf/mmap-go"
)

// locationRecord is the fixed-width value stored per term-id: its
// document frequency and the byte range of its posting-list block.
// Storing these positionally by term-id (rather than keyed by lexeme
// in the dictionary itself) lets Index resolve a term-id straight to
// its posting list with an O(1) array lookup instead of a second
// binary search, grounded on the teacher's ArrayStoreReader/
// FieldLengthReader pattern for fixed-size positional records.
type locationRecord struct {
	DocFreq    uint64
	BlockStart uint64
	BlockEnd   uint64
}

const locationRecordSize = 8 + 8 + 8

func encodeLocationRecord(r locationRecord) []byte {
	buf := make([]byte, locationRecordSize)
	binary.BigEndian.PutUint64(buf, r.DocFreq)
	binary.BigEndian.PutUint64(buf[8:], r.BlockStart)
	binary.BigEndian.PutUint64(buf[16:], r.BlockEnd)
	return buf
}

func decodeLocationRecord(b []byte) locationRecord {
	return locationRecord{
		DocFreq:    binary.BigEndian.Uint64(b),
		BlockStart: binary.BigEndian.Uint64(b[8:]),
		BlockEnd:   binary.BigEndian.Uint64(b[16:]),
	}
}

// LocationsWriter appends one fixed-size locationRecord per term-id, in
// term-id order.
type LocationsWriter struct {
	file *os.File
}

func newLocationsWriter(path string) (*LocationsWriter, error) {
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	return &LocationsWriter{file: file}, nil
}

func (w *LocationsWriter) Append(r locationRecord) error {
	_, err := w.file.Write(encodeLocationRecord(r))
	return err
}

func (w *LocationsWriter) Close() error {
	return w.file.Close()
}

// LocationsReader is an mmap-backed positional array of locationRecord,
// indexed directly by term-id.
type LocationsReader struct {
	data mmap.MMap
	file *os.File
}

func newLocationsReader(path string) (*LocationsReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &LocationsReader{data: data, file: file}, nil
}

func (r *LocationsReader) Get(id uint32) locationRecord {
	offset := uint64(id) * locationRecordSize
	return decodeLocationRecord(r.data[offset : offset+locationRecordSize])
}

func (r *LocationsReader) Close() error {
	return r.file.Close()
}
