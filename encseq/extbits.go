package encseq

import "github.com/hupe1980/seqdex/bitpack"

// ExtBitsFlags selects what ExtraBits retrieves.
type ExtBitsFlags uint8

const (
	// RetrieveCWBits retrieves the constant-width extra bits of the block.
	RetrieveCWBits ExtBitsFlags = 1 << iota
	// PersistentCWBits makes the constant-width view outlive the hint.
	PersistentCWBits
	// RetrieveVarBits retrieves the variable-width extra bits of the block.
	RetrieveVarBits
	// PersistentVarBits makes the variable-width view outlive the hint.
	PersistentVarBits
)

// ExtBits is the extra bit payload of the block holding a position.
//
// A transient view borrows the scratch space of the hint it was read with.
// Reading it after the hint served another ExtraBits call or was released
// panics.
type ExtBits struct {
	// Start and Len are the symbol range of the block.
	Start uint64
	Len   uint64

	cw, vw       bitpack.String
	cwLen, vwLen uint64
	cwBorrowed   bool
	vwBorrowed   bool
	owner        *blockHint
	gen          uint64
}

// CWBits returns the constant-width bits, starting at bit offset 0, and
// their count.
func (e ExtBits) CWBits() (bitpack.String, uint64) {
	if e.cwBorrowed {
		e.check()
	}
	return e.cw, e.cwLen
}

// VarBits returns the variable-width bits, starting at bit offset 0, and
// their count.
func (e ExtBits) VarBits() (bitpack.String, uint64) {
	if e.vwBorrowed {
		e.check()
	}
	return e.vw, e.vwLen
}

func (e ExtBits) check() {
	if e.owner.gen != e.gen {
		panic("encseq: transient extra bits read after their hint was reused")
	}
}

// ExtraBits returns the extra bits stored for the block containing pos.
// Without a hint every view is persistent.
func (s *Sequence) ExtraBits(pos uint64, flags ExtBitsFlags, h Hint) ExtBits {
	s.checkPos(pos)
	l := &s.l
	block := pos / l.blockSize
	e := ExtBits{Start: block * l.blockSize, Len: l.blockLen(block)}

	var cwOff, vwOff bitpack.Offset
	if flags&RetrieveCWBits != 0 {
		cwOff = l.cwExtraOffset(block)
		e.cwLen = l.cwBitsPerPos * e.Len
	}
	if flags&RetrieveVarBits != 0 && l.varOffBits > 0 {
		vwOff, e.vwLen = s.varRange(block)
	}

	bh, pooled := s.acquire(h)
	defer s.recycle(bh, pooled)
	e.cwBorrowed = !pooled && flags&PersistentCWBits == 0 && e.cwLen > 0
	e.vwBorrowed = !pooled && flags&PersistentVarBits == 0 && e.vwLen > 0

	if !pooled {
		bh.gen++
		e.owner = bh
		e.gen = bh.gen
	}
	var scratchBits uint64
	if e.cwBorrowed {
		scratchBits += uint64(bitpack.ElemsFor(e.cwLen)) * 8
	}
	if e.vwBorrowed {
		scratchBits += e.vwLen
	}
	if uint64(len(bh.scratch))*8 < scratchBits {
		bh.scratch = bitpack.New(scratchBits)
	}
	scratch := bh.scratch

	if e.cwLen > 0 {
		if e.cwBorrowed {
			e.cw = scratch[:bitpack.ElemsFor(e.cwLen)]
			scratch = scratch[len(e.cw):]
		} else {
			e.cw = bitpack.New(e.cwLen)
		}
		bitpack.Copy(e.cw, 0, s.cw, cwOff, e.cwLen)
	}
	if e.vwLen > 0 {
		if e.vwBorrowed {
			e.vw = scratch[:bitpack.ElemsFor(e.vwLen)]
		} else {
			e.vw = bitpack.New(e.vwLen)
		}
		bitpack.Copy(e.vw, 0, s.vw, vwOff, e.vwLen)
	}
	return e
}

// varRange returns the variable-width bit offset and length of block.
func (s *Sequence) varRange(block uint64) (bitpack.Offset, uint64) {
	l := &s.l
	bucket := block / l.bucketBlocks
	off := bitpack.GetUint64(s.cw, l.varOffOffset(bucket), l.varOffBits)
	for b := bucket * l.bucketBlocks; b < block; b++ {
		off += bitpack.GetUint64(s.cw, l.blockBase(b)+uint64(l.codeBits), l.varLenBits)
	}
	n := bitpack.GetUint64(s.cw, l.blockBase(block)+uint64(l.codeBits), l.varLenBits)
	return off, n
}
