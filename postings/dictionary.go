package postings

import (
	"encoding/binary"

	"github.com/quokkasearch/queryeval/query"
)

// DictionaryWriter maps lexemes to sequentially assigned term-ids,
// grounded on the teacher's DictionaryWriter/KVStoreWriter pairing but
// storing only the term-id: per-term posting-list location lives in the
// companion LocationsWriter/LocationsReader array store, addressable directly by
// term-id since ids are assigned 0..n-1 in write order.
type DictionaryWriter struct {
	kvWriter *KVStoreWriter
	nextID   query.TermID
}

func newDictionaryWriter(basename string) (*DictionaryWriter, error) {
	kvWriter, err := newKVStoreWriter(basename)
	if err != nil {
		return nil, err
	}
	return &DictionaryWriter{kvWriter: kvWriter}, nil
}

// Write assigns the next sequential term-id to lexeme. Caller must write
// lexemes in ascending byte order.
func (w *DictionaryWriter) Write(lexeme string) (query.TermID, error) {
	id := w.nextID
	w.nextID++

	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(id))
	if err := w.kvWriter.Append([]byte(lexeme), buf); err != nil {
		return 0, err
	}
	return id, nil
}

func (w *DictionaryWriter) Close() error {
	return w.kvWriter.Close()
}

// DictionaryReader implements query.Dict over the on-disk KV store.
type DictionaryReader struct {
	kvReader *KVStoreReader
}

func newDictionaryReader(basename string) (*DictionaryReader, error) {
	kvReader, err := newKVStoreReader(basename)
	if err != nil {
		return nil, err
	}
	return &DictionaryReader{kvReader: kvReader}, nil
}

func (r *DictionaryReader) Lookup(lexeme string) (query.TermID, bool) {
	value := r.kvReader.Get([]byte(lexeme))
	if value == nil {
		return 0, false
	}
	return query.TermID(binary.BigEndian.Uint32(value)), true
}

func (r *DictionaryReader) Close() error {
	return r.kvReader.Close()
}
