package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

// Codes for the two special symbols. They mirror the alphabet package but are
// duplicated here so testutil stays dependency free.
const (
	Wildcard  byte = 254
	Separator byte = 255
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Uint64s returns n pseudo-random values.
func (r *RNG) Uint64s(n int) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, n)
	for i := range out {
		out[i] = r.rand.Uint64()
	}
	return out
}

// Codes returns n symbol codes drawn uniformly from [0,numChars). With
// probability wildcardRate a position holds Wildcard instead.
func (r *RNG) Codes(n, numChars int, wildcardRate float64) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, n)
	for i := range out {
		if wildcardRate > 0 && r.rand.Float64() < wildcardRate {
			out[i] = Wildcard
			continue
		}
		out[i] = byte(r.rand.Intn(numChars))
	}
	return out
}

// DNA returns n random nucleotides as text.
func (r *RNG) DNA(n int) []byte {
	const bases = "ACGT"
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]byte, n)
	for i := range out {
		out[i] = bases[r.rand.Intn(len(bases))]
	}
	return out
}

// Substring returns a random window of length n taken from src.
func (r *RNG) Substring(src []byte, n int) []byte {
	if n > len(src) {
		n = len(src)
	}
	start := r.Intn(len(src) - n + 1)
	out := make([]byte, n)
	copy(out, src[start:start+n])
	return out
}

// IsSpecial reports whether code is a wildcard or separator.
func IsSpecial(code byte) bool {
	return code >= Wildcard
}

// NaiveRank counts occurrences of sym in codes[0:pos].
func NaiveRank(codes []byte, sym byte, pos int) uint64 {
	var n uint64
	for _, c := range codes[:pos] {
		if c == sym {
			n++
		}
	}
	return n
}

// MaximalMatch is a brute-force match triple.
type MaximalMatch struct {
	DBStart     uint64
	QueryOffset uint64
	Length      uint64
}

// NaiveMaximalMatches returns every left-maximal exact match of at least
// minLen symbols between db and query, extended to the right as far as
// possible. Special symbols never match. The result is sorted by query offset,
// then database position.
func NaiveMaximalMatches(db, query []byte, minLen int) []MaximalMatch {
	var out []MaximalMatch
	if minLen <= 0 || len(query) < minLen {
		return out
	}
	for q := 0; q+minLen <= len(query); q++ {
		for p := 0; p < len(db); p++ {
			l := 0
			for p+l < len(db) && q+l < len(query) && !IsSpecial(db[p+l]) && db[p+l] == query[q+l] {
				l++
			}
			if l < minLen {
				continue
			}
			if p > 0 && q > 0 && !IsSpecial(db[p-1]) && db[p-1] == query[q-1] {
				continue
			}
			out = append(out, MaximalMatch{DBStart: uint64(p), QueryOffset: uint64(q), Length: uint64(l)})
		}
	}
	SortMatches(out)
	return out
}

// SortMatches orders matches by query offset, then database start.
func SortMatches(m []MaximalMatch) {
	sort.Slice(m, func(i, j int) bool {
		if m[i].QueryOffset != m[j].QueryOffset {
			return m[i].QueryOffset < m[j].QueryOffset
		}
		return m[i].DBStart < m[j].DBStart
	})
}
