// Package postings implements the on-disk domain stack behind the query
// package's storage interfaces: a single-segment posting-list store, a
// dictionary mapping terms to term-ids, and precomputed WAND upper-bound
// data, all mmap-backed for read access.
package postings

import "os"

func createFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
}
