package mmsearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/encseq"
	"github.com/hupe1980/seqdex/suffixarray"
	"github.com/hupe1980/seqdex/testutil"
)

func encode(t *testing.T, s string) []byte {
	t.Helper()
	codes, err := alphabet.DNA().EncodeText([]byte(s))
	require.NoError(t, err)
	return codes
}

func index(t *testing.T, codes []byte) (*encseq.Sequence, *suffixarray.Array) {
	t.Helper()
	seq, err := encseq.Build(context.Background(), blobstore.NewMemoryStore(), "db.eis", alphabet.DNA(), codes, encseq.WithBlockSize(3), encseq.WithBucketBlocks(4))
	require.NoError(t, err)
	t.Cleanup(func() { _ = seq.Close() })
	return seq, suffixarray.Build(codes, alphabet.Forward)
}

// collect gathers matches as brute-force triples per query unit.
type collector map[uint64][]testutil.MaximalMatch

func (c collector) sink() Sink {
	return SinkFunc(func(_ Accessor, m *Match) error {
		c[m.QuerySeqNum] = append(c[m.QuerySeqNum], testutil.MaximalMatch{
			DBStart:     m.DBStart,
			QueryOffset: m.QueryOffset,
			Length:      m.Length,
		})
		return nil
	})
}

func (c collector) sorted(unit uint64) []testutil.MaximalMatch {
	out := c[unit]
	testutil.SortMatches(out)
	return out
}

func TestSearcherCompare(t *testing.T) {
	newSearcher := func(t *testing.T, db, query string, minLen uint64) *searcher {
		qr, err := newQueryReader(Raw(encode(t, query)))
		require.NoError(t, err)
		t.Cleanup(qr.release)
		codes := encode(t, db)
		return &searcher{
			db:     Plain{Codes: codes}.NewScanner(alphabet.Forward),
			total:  uint64(len(codes)),
			query:  qr,
			minLen: minLen,
		}
	}

	tests := []struct {
		name      string
		db, query string
		minLen    uint64
		lcp       uint64
		wantSign  int
		wantLCP   uint64
	}{
		{"equal up to min length", "ACGT", "ACGT", 4, 0, 0, 4},
		{"resumes after lcp", "ACGT", "ACGT", 4, 2, 0, 4},
		{"query larger", "ACGA", "ACGT", 4, 0, 1, 3},
		{"query smaller", "ACGT", "ACGA", 4, 0, -1, 3},
		{"end of database", "AC", "ACG", 3, 0, -1, 2},
		{"equal specials", "ACNT", "ACNT", 4, 0, -1, 2},
		{"equal separators", "A|GT", "A|GT", 4, 0, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSearcher(t, tt.db, tt.query, tt.minLen)
			sign, lcp := s.compare(0, tt.lcp)
			assert.Equal(t, tt.wantSign, min(max(sign, -1), 1))
			assert.Equal(t, tt.wantLCP, lcp)
		})
	}
}

func TestSearch(t *testing.T) {
	db := encode(t, "ACGTACGT")
	seq, sa := index(t, db)
	acc := Encoded(seq)
	whole := LCPInterval{Left: 0, Right: sa.Len() - 1}

	t.Run("two occurrences", func(t *testing.T) {
		it := NewIteratorComplete(acc, sa, whole, encode(t, "ACGT"))
		require.False(t, it.IsEmpty())
		assert.Equal(t, uint64(2), it.Count())

		var got []uint64
		for pos, ok := it.Next(); ok; pos, ok = it.Next() {
			got = append(got, pos)
		}
		assert.ElementsMatch(t, []uint64{0, 4}, got)
		assert.Equal(t, uint64(2), it.Count())
	})

	t.Run("absent", func(t *testing.T) {
		for _, p := range []string{"AA", "TT", "CGTT", "ACGTACGTA"} {
			it := NewIteratorComplete(acc, sa, whole, encode(t, p))
			assert.True(t, it.IsEmpty(), p)
			assert.Equal(t, Empty(), it.Interval(), p)
			assert.Zero(t, it.Count())
			_, ok := it.Next()
			assert.False(t, ok)
		}
	})

	t.Run("identical iterators", func(t *testing.T) {
		a := NewIteratorComplete(acc, sa, whole, encode(t, "GT"))
		b := NewIteratorComplete(acc, sa, whole, encode(t, "GTA"))
		c := NewIteratorComplete(acc, sa, whole, encode(t, "G"))
		assert.True(t, a.Equal(c))
		assert.False(t, a.Equal(b))
		assert.Equal(t, uint64(1), b.Count())
	})

	t.Run("plain accessor", func(t *testing.T) {
		it := NewIteratorComplete(Plain{Codes: db}, sa, whole, encode(t, "CG"))
		assert.Equal(t, uint64(2), it.Count())
	})

	t.Run("special in pattern", func(t *testing.T) {
		withN, saN := index(t, encode(t, "ACNGT"))
		it := NewIteratorComplete(Encoded(withN), saN, LCPInterval{Right: saN.Len() - 1}, encode(t, "CN"))
		assert.True(t, it.IsEmpty())
	})

	t.Run("narrowing", func(t *testing.T) {
		outer, err := Search(acc, sa, whole, Raw(encode(t, "ACGT")), 0, 1)
		require.NoError(t, err)
		inner, err := Search(acc, sa, LCPInterval{Left: outer.Left, Right: outer.Right, Offset: 1}, Raw(encode(t, "ACGT")), 0, 4)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), outer.Count())
		assert.Equal(t, uint64(2), inner.Count())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Search(acc, sa, whole, Raw(db), 0, 0)
		assert.ErrorIs(t, err, ErrInvalidMinLength)
		_, err = Search(acc, sa, whole, QueryRep{Sequence: db, ReadMode: alphabet.Reverse, Length: 8}, 0, 2)
		assert.ErrorIs(t, err, ErrInvalidQuery)
		_, err = Search(acc, sa, whole, QueryRep{Sequence: db, Length: 9}, 0, 2)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	assert.True(t, (*Iterator)(nil).IsEmpty())
}

func TestEnumQueryMatches(t *testing.T) {
	db := encode(t, "ACGTACGT")
	seq, sa := index(t, db)

	got := collector{}
	require.NoError(t, EnumQueryMatches(Encoded(seq), sa, [][]byte{encode(t, "ACGT")}, 4, got.sink()))
	assert.Equal(t, []testutil.MaximalMatch{
		{DBStart: 0, QueryOffset: 0, Length: 4},
		{DBStart: 4, QueryOffset: 0, Length: 4},
	}, got.sorted(0))
}

func TestEnumQueryMatches_Records(t *testing.T) {
	seq, sa := index(t, encode(t, "TTACGTAA"))
	queries := [][]byte{encode(t, "A"), encode(t, "GACGTC")}

	var matches []Match
	sink := SinkFunc(func(_ Accessor, m *Match) error {
		matches = append(matches, *m)
		return nil
	})
	require.NoError(t, EnumQueryMatches(Encoded(seq), sa, queries, 3, sink))
	require.Len(t, matches, 1)
	assert.Equal(t, Match{
		DBStart:     2,
		Length:      4,
		ReadMode:    alphabet.Forward,
		QuerySeqNum: 1,
		QueryOffset: 1,
		QueryLength: 6,
	}, matches[0])
}

func TestEnumQueryMatches_Random(t *testing.T) {
	rng := testutil.NewRNG(1234)

	for round := range 20 {
		db := rng.Codes(300+rng.Intn(300), 4, 0.02)
		for i := range db {
			if rng.Intn(60) == 0 {
				db[i] = alphabet.Separator
			}
		}
		seq, sa := index(t, db)

		queries := make([][]byte, 4)
		for i := range queries {
			q := rng.Substring(db, 20+rng.Intn(40))
			q = append(q, rng.Codes(10, 4, 0.05)...)
			for j := range q {
				// Keep the query a single unit.
				if q[j] == alphabet.Separator {
					q[j] = alphabet.Wildcard
				}
			}
			queries[i] = q
		}
		minLen := uint64(4 + rng.Intn(5))

		for _, acc := range []Accessor{Encoded(seq), Plain{Codes: db}} {
			got := collector{}
			require.NoError(t, EnumQueryMatches(acc, sa, queries, minLen, got.sink()))
			for i, q := range queries {
				want := testutil.NaiveMaximalMatches(db, q, int(minLen))
				assert.Equal(t, want, got.sorted(uint64(i)), "round %d query %d", round, i)
			}
		}
	}
}

func TestEnumQueryMatches_Separator(t *testing.T) {
	seq, sa := index(t, encode(t, "GTAC"))

	got := collector{}
	require.NoError(t, EnumQueryMatches(Encoded(seq), sa, [][]byte{encode(t, "AC|GT")}, 2, got.sink()))
	assert.Equal(t, []testutil.MaximalMatch{{DBStart: 2, QueryOffset: 0, Length: 2}}, got.sorted(0))
	assert.Equal(t, []testutil.MaximalMatch{{DBStart: 0, QueryOffset: 0, Length: 2}}, got.sorted(1))
}

func TestEnumQueryMatches_Stop(t *testing.T) {
	seq, sa := index(t, encode(t, "ACGTACGTACGT"))

	calls := 0
	err := EnumQueryMatches(Encoded(seq), sa, [][]byte{encode(t, "ACGT")}, 2, SinkFunc(func(Accessor, *Match) error {
		calls++
		return ErrStop
	}))
	assert.ErrorIs(t, err, ErrStop)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	err = EnumQueryMatches(Encoded(seq), sa, [][]byte{encode(t, "ACGT")}, 2, SinkFunc(func(Accessor, *Match) error {
		return boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestEnumQueryMatches_ShortQueries(t *testing.T) {
	seq, sa := index(t, encode(t, "ACGT"))
	got := collector{}
	require.NoError(t, EnumQueryMatches(Encoded(seq), sa, [][]byte{encode(t, "AC"), nil}, 3, got.sink()))
	assert.Empty(t, got)

	assert.ErrorIs(t, EnumQueryMatches(Encoded(seq), sa, [][]byte{encode(t, "AC")}, 0, got.sink()), ErrInvalidMinLength)
}

func TestEnumSelfMatches(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		db := encode(t, "ACGTACGT")
		seq, sa := index(t, db)

		got := collector{}
		require.NoError(t, EnumSelfMatches(seq, sa, alphabet.Forward, 4, got.sink()))
		want := testutil.NaiveMaximalMatches(db, db, 4)
		assert.Contains(t, want, testutil.MaximalMatch{DBStart: 0, QueryOffset: 0, Length: 8})
		assert.Equal(t, want, got.sorted(0))
	})

	t.Run("reverse complement", func(t *testing.T) {
		rng := testutil.NewRNG(77)
		dna := alphabet.DNA()
		parts := [][]byte{rng.DNA(120), rng.DNA(3), rng.DNA(90)}
		// Plant a reverse complement palindrome.
		copy(parts[2][10:], "AACCGGTT")
		db, err := alphabet.EncodeSequences(dna, parts...)
		require.NoError(t, err)
		seq, sa := index(t, db)

		got := collector{}
		require.NoError(t, EnumSelfMatches(seq, sa, alphabet.ReverseComplement, 5, got.sink()))

		for i := range seq.NumSequences() {
			start, length := seq.SequenceInfo(i)
			unit := make([]byte, length)
			for j := range unit {
				unit[j] = dna.Complement(db[start+length-1-uint64(j)])
			}
			want := testutil.NaiveMaximalMatches(db, unit, 5)
			assert.Equal(t, want, got.sorted(i), "sequence %d", i)
		}
		assert.NotEmpty(t, got[2])
	})

	t.Run("self flag", func(t *testing.T) {
		seq, sa := index(t, encode(t, "ACGTT"))
		var flags []bool
		require.NoError(t, EnumSelfMatches(seq, sa, alphabet.Reverse, 2, SinkFunc(func(_ Accessor, m *Match) error {
			flags = append(flags, m.SelfMatch)
			assert.Equal(t, alphabet.Reverse, m.ReadMode)
			return nil
		})))
		require.NotEmpty(t, flags)
		for _, f := range flags {
			assert.True(t, f)
		}
	})

	t.Run("no complement", func(t *testing.T) {
		seq, err := encseq.Build(context.Background(), blobstore.NewMemoryStore(), "p.eis", alphabet.Protein(), []byte{0, 1, 2})
		require.NoError(t, err)
		defer seq.Close()
		err = EnumSelfMatches(seq, suffixarray.Build([]byte{0, 1, 2}, alphabet.Forward), alphabet.Complement, 2, collector{}.sink())
		assert.ErrorIs(t, err, alphabet.ErrNoComplement)
	})
}

func TestSubstringMatch(t *testing.T) {
	rng := testutil.NewRNG(99)
	db := rng.Codes(500, 4, 0.01)
	query := append(rng.Substring(db, 30), rng.Codes(20, 4, 0)...)

	got := collector{}
	require.NoError(t, SubstringMatch(context.Background(), db, query, 6, alphabet.DNA(), got.sink()))
	assert.Equal(t, testutil.NaiveMaximalMatches(db, query, 6), got.sorted(0))

	err := SubstringMatch(context.Background(), []byte{9}, query, 6, alphabet.DNA(), got.sink())
	assert.ErrorIs(t, err, encseq.ErrInvalidSymbol)
}
