// Package mmap maps committed record files read-only into memory.
//
//	m, err := mmap.Open("series.table")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// On Unix the mapping uses mmap(2) and madvise(2) from golang.org/x/sys/unix.
// Other platforms fall back to reading the file into memory, which keeps the
// same API at the cost of a copy.
//
// A Mapping is safe for concurrent reads. Close is idempotent; the slice
// returned by Bytes must not be used after Close.
package mmap
