// Package mmap maps index files read-only into memory.
//
// An encoded sequence is accessed in place: the loader keeps the Mapping
// alive for as long as the sequence is open and slices its sections out of
// Bytes. Nothing is copied onto the Go heap.
//
//	m, err := mmap.Open("genome.eis")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessRandom)
//	body := m.Bytes()[headerLen:]
//
// Unix uses mmap(2) and madvise(2). Windows uses MapViewOfFile and ignores
// access advice.
//
// A Mapping may be read from many goroutines. Close is idempotent; slices
// obtained from Bytes must not be touched after it returns.
package mmap
