package encseq

import (
	"fmt"
	"slices"

	"github.com/hupe1980/seqdex/alphabet"
)

// VerifyIntegrity compares every symbol and every rank of s against the
// original codes it was built from.
func (s *Sequence) VerifyIntegrity(seq []byte) error {
	if uint64(len(seq)) != s.l.length {
		return fmt.Errorf("encseq: length %d, want %d", s.l.length, len(seq))
	}
	h := s.NewHint()
	defer h.Release()

	counts := make([]uint64, s.l.size)
	for pos, c := range seq {
		p := uint64(pos)
		for sym, want := range counts {
			if got := s.TransformedRank(alphabet.Symbol(sym), p, h); got != want {
				return fmt.Errorf("encseq: rank of symbol %d at %d is %d, want %d", sym, p, got, want)
			}
		}
		if got := s.SymbolAt(p, h); got != c {
			return fmt.Errorf("encseq: symbol at %d is %d, want %d", p, got, c)
		}
		if got := s.IsSpecial(p); got != alphabet.IsSpecial(c) {
			return fmt.Errorf("encseq: special flag at %d is %t", p, got)
		}
		counts[s.alpha.Transform(c)]++
	}
	for sym, want := range counts {
		if got := s.TransformedRank(alphabet.Symbol(sym), s.l.length, h); got != want {
			return fmt.Errorf("encseq: total rank of symbol %d is %d, want %d", sym, got, want)
		}
	}
	return nil
}

// BlockIndexPair returns the table index of a block of BlockSize
// transformed symbols and the first block of s stored with that index.
// found is false when no block of s holds those symbols.
func (s *Sequence) BlockIndexPair(syms []alphabet.Symbol) (idx [2]uint64, found bool) {
	l := &s.l
	if uint64(len(syms)) != l.blockSize {
		panic(fmt.Sprintf("encseq: block of %d symbols, want %d", len(syms), l.blockSize))
	}
	for _, sym := range syms {
		if uint64(sym) >= l.size {
			panic(fmt.Sprintf("encseq: symbol %d outside alphabet of size %d", sym, l.size))
		}
		idx[0] = idx[0]*l.size + uint64(sym)
	}

	h := s.newBlockHint()
	for block := range l.numBlocks {
		h.decode(block)
		if slices.Equal(h.syms, syms) {
			idx[1] = block
			return idx, true
		}
	}
	return idx, false
}
