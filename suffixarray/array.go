package suffixarray

import (
	"fmt"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/bitpack"
	"github.com/hupe1980/seqdex/encseq"
)

// Array is a bit packed suffix table of a text of Len()-1 symbols.
type Array struct {
	mode   alphabet.ReadMode
	n      uint64
	width  uint
	packed bitpack.String
}

// Len returns the number of entries, one more than the text length.
func (a *Array) Len() uint64 { return a.n }

// ReadMode returns the mode the text was read in when sorting.
func (a *Array) ReadMode() alphabet.ReadMode { return a.mode }

// At returns the start position of the i-th smallest suffix.
func (a *Array) At(i uint64) uint64 {
	if i >= a.n {
		panic(fmt.Sprintf("suffixarray: index %d out of range [0,%d)", i, a.n))
	}
	return bitpack.GetUint64(a.packed, i*uint64(a.width), a.width)
}

// Slice returns the entries [left, right] inclusive.
func (a *Array) Slice(left, right uint64) []uint64 {
	if left > right {
		return nil
	}
	if right >= a.n {
		panic(fmt.Sprintf("suffixarray: index %d out of range [0,%d)", right, a.n))
	}
	out := make([]uint64, right-left+1)
	bitpack.GetUniformUint64Array(a.packed, left*uint64(a.width), a.width, out)
	return out
}

func newArray(mode alphabet.ReadMode, sorted []uint64) *Array {
	n := uint64(len(sorted))
	width := bitpack.RequiredUint64Bits(n - 1)
	a := &Array{
		mode:   mode,
		n:      n,
		width:  width,
		packed: bitpack.New(n * uint64(width)),
	}
	bitpack.StoreUniformUint64Array(a.packed, 0, width, sorted)
	return a
}

// Build sorts the suffixes of text, a slice of original alphabet codes
// already read in mode.
func Build(text []byte, mode alphabet.ReadMode) *Array {
	return newArray(mode, sortSuffixes(text))
}

// FromSequence reads seq in mode and sorts its suffixes.
func FromSequence(seq *encseq.Sequence, mode alphabet.ReadMode) (*Array, error) {
	if err := seq.Alphabet().Check(mode); err != nil {
		return nil, err
	}
	sc := seq.NewScanner(mode)
	defer sc.Release()

	text := make([]byte, seq.Length())
	for i := range text {
		text[i] = sc.CharAt(uint64(i))
	}
	return Build(text, mode), nil
}
