// Package testutil provides testing utilities for seqdex.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source, random symbol sequence generators and
// brute-force reference implementations used as ground truth.
//
// # Random Sequences
//
//	rng := testutil.NewRNG(seed)
//	codes := rng.Codes(1000, 4, 0.01) // ACGT codes with ~1% wildcards
//
// # Ground Truth
//
//	want := testutil.NaiveMaximalMatches(db, query, minLen)
//	rank := testutil.NaiveRank(codes, sym, pos)
package testutil
