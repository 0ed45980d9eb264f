package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	rng := NewRNG(4711)

	c := rng.Codes(1000, 4, 0.1)

	assert.Len(t, c, 1000)
	wild := 0
	for _, x := range c {
		if x == Wildcard {
			wild++
			continue
		}
		assert.Less(t, x, byte(4))
	}
	assert.Greater(t, wild, 0)
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.Uint64s(4)
	rng.Reset()
	b := rng.Uint64s(4)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestNaiveRank(t *testing.T) {
	codes := []byte{0, 1, 0, 2, 0}
	assert.Equal(t, uint64(0), NaiveRank(codes, 0, 0))
	assert.Equal(t, uint64(2), NaiveRank(codes, 0, 3))
	assert.Equal(t, uint64(3), NaiveRank(codes, 0, 5))
	assert.Equal(t, uint64(1), NaiveRank(codes, 2, 5))
}

func TestNaiveMaximalMatches(t *testing.T) {
	// ACGTACGT vs ACGT
	db := []byte{0, 1, 2, 3, 0, 1, 2, 3}
	q := []byte{0, 1, 2, 3}

	got := NaiveMaximalMatches(db, q, 4)

	assert.Equal(t, []MaximalMatch{
		{DBStart: 0, QueryOffset: 0, Length: 4},
		{DBStart: 4, QueryOffset: 0, Length: 4},
	}, got)
}

func TestNaiveMaximalMatches_SpecialsNeverMatch(t *testing.T) {
	db := []byte{0, Wildcard, 1}
	q := []byte{0, Wildcard, 1}

	assert.Empty(t, NaiveMaximalMatches(db, q, 2))
}
