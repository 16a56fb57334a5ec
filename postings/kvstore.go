package postings

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"sort"

	"github.com/edsrzf/mmap-go"
)

// KVStoreWriter appends sorted key/value pairs to a data file plus a
// parallel fixed-width offset index, letting KVStoreReader binary-search
// the index without ever decoding the data file sequentially.
type KVStoreWriter struct {
	dataFile    *os.File
	dataWriter  *bufio.Writer
	indexFile   *os.File
	indexWriter *bufio.Writer
	offset      uint64
}

func newKVStoreWriter(basename string) (*KVStoreWriter, error) {
	dataFile, err := createFile(basename + ".data")
	if err != nil {
		return nil, err
	}
	indexFile, err := createFile(basename + ".index")
	if err != nil {
		dataFile.Close()
		return nil, err
	}

	return &KVStoreWriter{
		dataFile:    dataFile,
		dataWriter:  bufio.NewWriter(dataFile),
		indexFile:   indexFile,
		indexWriter: bufio.NewWriter(indexFile),
	}, nil
}

// Append writes key/value in order. Caller is responsible for inserting
// keys in ascending order; Get's binary search assumes it.
func (w *KVStoreWriter) Append(key, value []byte) error {
	keyLength := uint32(len(key))
	valueLength := uint32(len(value))
	totalLength := keyLength + valueLength + 8

	buffer := make([]byte, 0, totalLength)
	buffer = binary.BigEndian.AppendUint32(buffer, keyLength)
	buffer = binary.BigEndian.AppendUint32(buffer, valueLength)
	buffer = append(buffer, key...)
	buffer = append(buffer, value...)

	if _, err := w.dataWriter.Write(buffer); err != nil {
		return err
	}

	offsetBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(offsetBytes, w.offset)
	if _, err := w.indexWriter.Write(offsetBytes); err != nil {
		return err
	}

	w.offset += uint64(totalLength)
	return nil
}

func (w *KVStoreWriter) Close() error {
	if err := w.dataWriter.Flush(); err != nil {
		return err
	}
	if err := w.dataFile.Close(); err != nil {
		return err
	}
	if err := w.indexWriter.Flush(); err != nil {
		return err
	}
	return w.indexFile.Close()
}

// KVStoreReader is an mmap-backed sorted key/value store read via binary
// search over the offset index.
type KVStoreReader struct {
	data      mmap.MMap
	dataFile  *os.File
	index     mmap.MMap
	indexFile *os.File
}

func newKVStoreReader(basename string) (*KVStoreReader, error) {
	dataFile, err := os.Open(basename + ".data")
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(dataFile, mmap.RDONLY, 0)
	if err != nil {
		_ = dataFile.Close()
		return nil, err
	}

	indexFile, err := os.Open(basename + ".index")
	if err != nil {
		_ = dataFile.Close()
		return nil, err
	}
	index, err := mmap.Map(indexFile, mmap.RDONLY, 0)
	if err != nil {
		_ = dataFile.Close()
		_ = indexFile.Close()
		return nil, err
	}

	return &KVStoreReader{data: data, dataFile: dataFile, index: index, indexFile: indexFile}, nil
}

// entryOffset returns the byte offset of the i'th entry's length-prefixed
// record in the data file.
func (kv *KVStoreReader) entryOffset(i int) uint64 {
	return binary.BigEndian.Uint64(kv.index[i*8 : i*8+8])
}

// entryKey decodes just the key portion of the i'th entry.
func (kv *KVStoreReader) entryKey(i int) []byte {
	offset := kv.entryOffset(i)
	keyLength := binary.BigEndian.Uint32(kv.data[offset : offset+4])
	return kv.data[offset+8 : offset+8+uint64(keyLength)]
}

// entryValue decodes the value portion of the i'th entry.
func (kv *KVStoreReader) entryValue(i int) []byte {
	offset := kv.entryOffset(i)
	keyLength := binary.BigEndian.Uint32(kv.data[offset : offset+4])
	valueLength := binary.BigEndian.Uint32(kv.data[offset+4 : offset+8])
	start := offset + 8 + uint64(keyLength)
	return kv.data[start : start+uint64(valueLength)]
}

// Get finds key by binary-searching the offset index for the first entry
// whose key is not less than key, then checking it for an exact match.
func (kv *KVStoreReader) Get(key []byte) []byte {
	numItems := len(kv.index) / 8
	if numItems == 0 {
		return nil
	}

	i := sort.Search(numItems, func(i int) bool {
		return bytes.Compare(kv.entryKey(i), key) >= 0
	})
	if i == numItems || !bytes.Equal(kv.entryKey(i), key) {
		return nil
	}
	return kv.entryValue(i)
}

func (kv *KVStoreReader) Close() error {
	if err := kv.dataFile.Close(); err != nil {
		_ = kv.indexFile.Close()
		return err
	}
	return kv.indexFile.Close()
}
