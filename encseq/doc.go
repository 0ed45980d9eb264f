// Package encseq stores a symbol sequence in a block encoded, bit packed form
// that answers symbol access and rank queries.
//
// The sequence is cut into blocks of BlockSize symbols. Each block is one
// constant-width code: the base-Size number formed by its transformed
// symbols, an index into a virtual table of Size^BlockSize entries. Every
// BucketBlocks blocks a bucket header records the cumulative count of every
// symbol before the bucket, so a rank query decodes at most BucketBlocks
// blocks.
//
// # Extra bits
//
// A BitInserter supplied at build time may attach bits to every block: a
// fixed number per position inside the constant-width record, and a
// variable number in a separate region. ExtraBits returns them.
//
// # Extension headers
//
// Callers may store small blobs keyed by a numeric id in front of the body.
// The alphabet and the special and separator position sets are stored the
// same way under reserved ids.
//
// # Hints
//
// Queries take an optional Hint that caches the last decoded block and its
// cumulative counts. A Hint belongs to one Sequence and one goroutine; the
// Sequence itself is safe for concurrent queries with distinct hints.
package encseq
