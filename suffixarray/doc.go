// Package suffixarray builds and persists the suffix table searched by
// package mmsearch.
//
// Suffixes are ordered symbol by symbol: regular symbols by code, any
// regular symbol before any special symbol, and the end of the text after
// everything. Two special symbols at the same depth compare by position, so
// no two suffixes are ever equal. The empty suffix is part of the table and
// sorts last.
package suffixarray
