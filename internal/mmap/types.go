package mmap

import "errors"

// AccessPattern is a kernel hint for how mapped bytes will be read.
type AccessPattern int

const (
	// AccessDefault leaves the kernel default.
	AccessDefault AccessPattern = iota
	// AccessSequential suits full scans such as integrity checks.
	AccessSequential
	// AccessRandom suits suffix array binary search and symbol lookups.
	AccessRandom
	AccessWillNeed
	AccessDontNeed
)

var (
	ErrClosed        = errors.New("mmap: mapping is closed")
	ErrInvalidSize   = errors.New("mmap: invalid file size")
	ErrInvalidOffset = errors.New("mmap: negative offset")
)
