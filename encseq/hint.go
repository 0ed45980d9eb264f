package encseq

import (
	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/bitpack"
)

// Hint caches decoded state between queries on one Sequence. Results are
// identical with or without a hint. A Hint must not be used concurrently.
type Hint interface {
	// Release invalidates the hint and every transient view borrowed from it.
	Release()

	sequence() *Sequence
}

// blockHint remembers the last decoded block and, when countsValid, the
// cumulative symbol counts before it.
type blockHint struct {
	seq *Sequence

	block   uint64
	decoded bool
	syms    []alphabet.Symbol

	counts      []uint64
	countsValid bool

	// gen invalidates transient extra bit views.
	gen     uint64
	scratch bitpack.String

	released bool
}

// NewHint returns a hint bound to s.
func (s *Sequence) NewHint() Hint {
	return s.newBlockHint()
}

func (s *Sequence) newBlockHint() *blockHint {
	return &blockHint{
		seq:    s,
		syms:   make([]alphabet.Symbol, s.l.blockSize),
		counts: make([]uint64, s.l.size),
	}
}

func (h *blockHint) sequence() *Sequence { return h.seq }

func (h *blockHint) Release() {
	h.released = true
	h.gen++
	h.decoded = false
	h.countsValid = false
}

// acquire resolves the caller's hint, or borrows a pooled one for nil.
func (s *Sequence) acquire(h Hint) (*blockHint, bool) {
	if h == nil {
		if v := s.hints.Get(); v != nil {
			return v.(*blockHint), true
		}
		return s.newBlockHint(), true
	}
	if h.sequence() != s {
		panic("encseq: hint belongs to another sequence")
	}
	bh := h.(*blockHint)
	if bh.released {
		panic("encseq: use of released hint")
	}
	return bh, false
}

func (s *Sequence) recycle(bh *blockHint, pooled bool) {
	if pooled {
		s.hints.Put(bh)
	}
}

// decode unpacks block into syms without touching counts.
func (h *blockHint) decode(block uint64) {
	l := &h.seq.l
	code := bitpack.GetUint64(h.seq.cw, l.blockBase(block), l.codeBits)
	for i := int(l.blockSize) - 1; i >= 0; i-- {
		h.syms[i] = alphabet.Symbol(code % l.size)
		code /= l.size
	}
	h.block = block
	h.decoded = true
}

// moveTo decodes block. Stepping to the next block keeps counts valid.
func (h *blockHint) moveTo(block uint64) {
	if h.decoded && h.block == block {
		return
	}
	if h.decoded && h.countsValid && block == h.block+1 {
		n := h.seq.l.blockLen(h.block)
		for _, sym := range h.syms[:n] {
			h.counts[sym]++
		}
	} else {
		h.countsValid = false
	}
	h.decode(block)
}

// seekCounts positions the hint on block with valid cumulative counts,
// walking forward from the hint when it already sits inside the bucket.
func (h *blockHint) seekCounts(block uint64) {
	if h.decoded && h.countsValid && h.block == block {
		return
	}
	l := &h.seq.l
	first := block / l.bucketBlocks * l.bucketBlocks
	if !(h.decoded && h.countsValid && h.block >= first && h.block < block) {
		bucket := block / l.bucketBlocks
		for sym := range h.counts {
			h.counts[sym] = bitpack.GetUint64(h.seq.cw, l.countOffset(bucket, uint64(sym)), l.countBits)
		}
		h.decode(first)
		h.countsValid = true
	}
	for h.block < block {
		h.moveTo(h.block + 1)
	}
}
