package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDNAEncode(t *testing.T) {
	a := DNA()

	codes, err := a.EncodeText([]byte("ACGTacgtUN|r"))
	require.NoError(t, err)

	assert.Equal(t, []byte{0, 1, 2, 3, 0, 1, 2, 3, 3, Wildcard, Separator, Wildcard}, codes)
	assert.Equal(t, "ACGTACGTTN|N", a.DecodeText(codes))
	assert.Equal(t, 4, a.NumChars())
	assert.Equal(t, 6, a.Size())
}

func TestEncodeUnknown(t *testing.T) {
	_, err := DNA().EncodeText([]byte("ACXG"))

	require.ErrorIs(t, err, ErrUnknownChar)
	assert.Contains(t, err.Error(), "offset 2")
}

func TestTransform(t *testing.T) {
	a := DNA()

	assert.Equal(t, Symbol(2), a.Transform(2))
	assert.Equal(t, Symbol(4), a.Transform(Wildcard))
	assert.Equal(t, Symbol(5), a.Transform(Separator))

	for sym := Symbol(0); int(sym) < a.Size(); sym++ {
		assert.Equal(t, sym, a.Transform(a.Untransform(sym)))
	}

	assert.Panics(t, func() { a.Transform(4) })
	assert.Panics(t, func() { a.Untransform(6) })
}

func TestComplement(t *testing.T) {
	a := DNA()

	assert.Equal(t, byte(3), a.Complement(0))
	assert.Equal(t, byte(1), a.Complement(2))
	assert.Equal(t, Wildcard, a.Complement(Wildcard))
	assert.Equal(t, Separator, a.Complement(Separator))

	assert.Equal(t, byte(0), a.Apply(Reverse, 0))
	assert.Equal(t, byte(3), a.Apply(ReverseComplement, 0))

	require.NoError(t, a.Check(ReverseComplement))
	require.ErrorIs(t, Protein().Check(Complement), ErrNoComplement)
	require.NoError(t, Protein().Check(Reverse))
	assert.Panics(t, func() { Protein().Complement(0) })
}

func TestReadMode(t *testing.T) {
	tests := []struct {
		in   string
		want ReadMode
	}{
		{"fwd", Forward},
		{"Reverse", Reverse},
		{"cpl", Complement},
		{"rcl", ReverseComplement},
		{"reverse-complement", ReverseComplement},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseReadMode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			back, err := ParseReadMode(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}

	_, err := ParseReadMode("sideways")
	require.Error(t, err)

	assert.Equal(t, uint64(9), Reverse.Position(0, 10))
	assert.Equal(t, uint64(3), Complement.Position(3, 10))
}

func TestNewValidation(t *testing.T) {
	_, err := New("x", nil, "N", nil)
	require.Error(t, err)

	_, err = New("x", []string{"A", "A"}, "N", nil)
	require.Error(t, err)

	_, err = New("x", []string{"A"}, "", nil)
	require.Error(t, err)

	_, err = New("x", []string{"A", "|"}, "N", nil)
	require.Error(t, err)

	_, err = New("x", []string{"A", "C"}, "N", []byte{1})
	require.Error(t, err)
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, a := range []*Alphabet{DNA(), Protein()} {
		t.Run(a.Name(), func(t *testing.T) {
			data, err := a.MarshalBinary()
			require.NoError(t, err)

			var got Alphabet
			require.NoError(t, got.UnmarshalBinary(data))
			assert.True(t, a.Equal(&got))
			assert.Equal(t, a.HasComplement(), got.HasComplement())
		})
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	data, err := DNA().MarshalBinary()
	require.NoError(t, err)

	var a Alphabet
	require.ErrorIs(t, a.UnmarshalBinary(nil), ErrInvalidEncoding)
	require.ErrorIs(t, a.UnmarshalBinary(data[:len(data)-1]), ErrInvalidEncoding)

	bad := append([]byte(nil), data...)
	bad[1] = 9
	require.ErrorIs(t, a.UnmarshalBinary(bad), ErrInvalidEncoding)
}

func TestEncodeSequences(t *testing.T) {
	got, err := EncodeSequences(DNA(), []byte("AC"), []byte(""), []byte("GT"))
	require.NoError(t, err)

	assert.Equal(t, []byte{0, 1, Separator, Separator, 2, 3}, got)

	_, err = EncodeSequences(DNA(), []byte("AC"), []byte("A?"))
	require.ErrorIs(t, err, ErrUnknownChar)
	assert.Contains(t, err.Error(), "sequence 1")
}
