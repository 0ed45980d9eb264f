package suffixarray

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/encseq"
	"github.com/hupe1980/seqdex/internal/hash"
	"github.com/hupe1980/seqdex/testutil"
)

func encode(t *testing.T, s string) []byte {
	t.Helper()
	codes, err := alphabet.DNA().EncodeText([]byte(s))
	require.NoError(t, err)
	return codes
}

func TestBuild_Order(t *testing.T) {
	tests := []struct {
		text string
		want []uint64
	}{
		{"", []uint64{0}},
		{"A", []uint64{0, 1}},
		{"ACGTACGT", []uint64{0, 4, 1, 5, 2, 6, 3, 7, 8}},
		// The end of the text sorts after every symbol, specials after regular
		// symbols and among themselves by position.
		{"ANA", []uint64{0, 2, 1, 3}},
		{"NN", []uint64{0, 1, 2}},
		{"A|A", []uint64{0, 2, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			a := Build(encode(t, tt.text), alphabet.Forward)
			assert.Equal(t, uint64(len(tt.text)+1), a.Len())
			assert.Equal(t, tt.want, a.Slice(0, a.Len()-1))
		})
	}
}

func TestBuild_Sorted(t *testing.T) {
	rng := testutil.NewRNG(42)
	text := rng.Codes(3000, 4, 0.02)
	a := Build(text, alphabet.Forward)

	seen := make([]bool, a.Len())
	for i := range a.Len() {
		p := a.At(i)
		require.False(t, seen[p])
		seen[p] = true
		if i > 0 {
			require.Negative(t, compareSuffixes(text, a.At(i-1), p), "entries %d and %d", i-1, i)
		}
	}
	assert.Equal(t, uint64(len(text)), a.At(a.Len()-1))
	assert.Panics(t, func() { a.At(a.Len()) })
	assert.Nil(t, a.Slice(3, 2))
}

func TestBuild_Repetitive(t *testing.T) {
	t.Run("homopolymer", func(t *testing.T) {
		text := make([]byte, 200000)
		a := Build(text, alphabet.Forward)
		// Longer runs of A sort first; the end of the text sorts last.
		for i := range a.Len() {
			require.Equal(t, i, a.At(i))
		}
	})

	t.Run("tandem repeats with specials", func(t *testing.T) {
		rng := testutil.NewRNG(11)
		unit := rng.Codes(7, 4, 0)
		var text []byte
		for i := range 400 {
			text = append(text, unit...)
			if i%50 == 49 {
				text = append(text, alphabet.Wildcard, alphabet.Separator)
			}
		}
		want := make([]uint64, len(text)+1)
		for i := range want {
			want[i] = uint64(i)
		}
		slices.SortFunc(want, func(i, j uint64) int { return compareSuffixes(text, i, j) })

		a := Build(text, alphabet.Forward)
		assert.Equal(t, want, a.Slice(0, a.Len()-1))
	})
}

func TestFromSequence(t *testing.T) {
	ctx := context.Background()
	codes := encode(t, "AACGTNAC")
	seq, err := encseq.Build(ctx, blobstore.NewMemoryStore(), "s.eis", alphabet.DNA(), codes)
	require.NoError(t, err)
	defer seq.Close()

	fwd, err := FromSequence(seq, alphabet.Forward)
	require.NoError(t, err)
	assert.Equal(t, Build(codes, alphabet.Forward).Slice(0, 8), fwd.Slice(0, 8))

	rc, err := FromSequence(seq, alphabet.ReverseComplement)
	require.NoError(t, err)
	assert.Equal(t, alphabet.ReverseComplement, rc.ReadMode())
	// Reverse complement of AACGTNAC is GTNACGTT.
	assert.Equal(t, Build(encode(t, "GTNACGTT"), alphabet.ReverseComplement).Slice(0, 8), rc.Slice(0, 8))

	protein, err := encseq.Build(ctx, blobstore.NewMemoryStore(), "p.eis", alphabet.Protein(), []byte{0, 1})
	require.NoError(t, err)
	_, err = FromSequence(protein, alphabet.Complement)
	assert.ErrorIs(t, err, alphabet.ErrNoComplement)
}

func TestPersist(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())
	text := testutil.NewRNG(8).Codes(1000, 4, 0.01)
	a := Build(text, alphabet.Reverse)

	require.NoError(t, Write(ctx, store, "idx.suf", a))
	b, err := Read(ctx, store, "idx.suf")
	require.NoError(t, err)
	assert.Equal(t, a.ReadMode(), b.ReadMode())
	assert.True(t, slices.Equal(a.Slice(0, a.Len()-1), b.Slice(0, b.Len()-1)))

	data, err := blobstore.Get(ctx, store, "idx.suf")
	require.NoError(t, err)

	corrupt := func(mutate func([]byte) []byte) error {
		d := mutate(append([]byte(nil), data...))
		require.NoError(t, store.Put(ctx, "bad.suf", d))
		_, err := Read(ctx, store, "bad.suf")
		return err
	}
	assert.ErrorIs(t, corrupt(func(d []byte) []byte { d[0] = 'X'; return d }), ErrCorrupt)
	assert.ErrorIs(t, corrupt(func(d []byte) []byte { return d[:len(d)-1] }), ErrCorrupt)
	assert.ErrorIs(t, corrupt(func(d []byte) []byte { d[len(d)-1] ^= 1; return d }), ErrCorrupt)
	assert.ErrorIs(t, corrupt(func(d []byte) []byte { return d[:5] }), ErrCorrupt)
	// The read mode lives in the header and is covered by the checksum.
	err = corrupt(func(d []byte) []byte { d[6] ^= 1; return d })
	var mismatch *hash.MismatchError
	assert.ErrorAs(t, err, &mismatch)

	_, err = Read(ctx, store, "missing.suf")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

// compareSuffixes orders two suffixes symbol by symbol.
func compareSuffixes(text []byte, i, j uint64) int {
	if i == j {
		return 0
	}
	n := uint64(len(text))
	for k := uint64(0); ; k++ {
		switch {
		case i+k == n:
			return 1
		case j+k == n:
			return -1
		}
		a, b := text[i+k], text[j+k]
		sa, sb := alphabet.IsSpecial(a), alphabet.IsSpecial(b)
		switch {
		case sa && sb:
			if i < j {
				return -1
			}
			return 1
		case sa:
			return 1
		case sb:
			return -1
		case a != b:
			if a < b {
				return -1
			}
			return 1
		}
	}
}
