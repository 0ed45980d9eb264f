package encseq

import (
	"fmt"

	"github.com/hupe1980/seqdex/alphabet"
)

// Rank returns the number of occurrences of the original code c in [0,pos).
func (s *Sequence) Rank(c byte, pos uint64, h Hint) uint64 {
	return s.TransformedRank(s.alpha.Transform(c), pos, h)
}

// TransformedRank returns the number of occurrences of the transformed
// symbol sym in [0,pos). pos may equal Length.
func (s *Sequence) TransformedRank(sym alphabet.Symbol, pos uint64, h Hint) uint64 {
	if pos > s.l.length {
		panic(fmt.Sprintf("encseq: rank position %d beyond length %d", pos, s.l.length))
	}
	if uint64(sym) >= s.l.size {
		panic(fmt.Sprintf("encseq: symbol %d outside alphabet of size %d", sym, s.l.size))
	}
	if pos == 0 {
		return 0
	}

	block := pos / s.l.blockSize
	within := pos % s.l.blockSize
	if within == 0 {
		block--
		within = s.l.blockSize
	}

	bh, pooled := s.acquire(h)
	bh.seekCounts(block)
	r := bh.counts[sym]
	for _, x := range bh.syms[:within] {
		if x == sym {
			r++
		}
	}
	s.recycle(bh, pooled)
	return r
}
