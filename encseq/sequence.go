package encseq

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/bitpack"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/internal/compress"
	"github.com/hupe1980/seqdex/internal/hash"
)

// Sequence is a loaded block encoded sequence. It is immutable and safe for
// concurrent queries as long as every goroutine uses its own Hint.
type Sequence struct {
	name  string
	alpha *alphabet.Alphabet
	l     layout

	cw      bitpack.String
	vw      bitpack.String
	varBits uint64

	blobs   []byte
	headers map[uint16]tableEntry

	specials   *roaring64.Bitmap
	separators *roaring64.Bitmap

	blob      blobstore.Blob
	closeOnce sync.Once
	closeErr  error

	hints  sync.Pool
	logger *slog.Logger
}

// Name returns the blob name the sequence was built or loaded under.
func (s *Sequence) Name() string { return s.name }

// Length returns the number of symbols.
func (s *Sequence) Length() uint64 { return s.l.length }

// Alphabet returns the alphabet the sequence was encoded with.
func (s *Sequence) Alphabet() *alphabet.Alphabet { return s.alpha }

// BlockSize returns the number of symbols per block.
func (s *Sequence) BlockSize() int { return int(s.l.blockSize) }

// BucketBlocks returns the number of blocks between rank checkpoints.
func (s *Sequence) BucketBlocks() int { return int(s.l.bucketBlocks) }

// IsSpecial reports whether the symbol at pos is a wildcard or separator.
func (s *Sequence) IsSpecial(pos uint64) bool {
	s.checkPos(pos)
	return s.specials.Contains(pos)
}

// SpecialCount returns the number of wildcard and separator positions.
func (s *Sequence) SpecialCount() uint64 { return s.specials.GetCardinality() }

// NumSequences returns the number of separator delimited sequences.
func (s *Sequence) NumSequences() uint64 { return s.separators.GetCardinality() + 1 }

// SequenceInfo returns the start position and length of sequence i.
func (s *Sequence) SequenceInfo(i uint64) (start, length uint64) {
	n := s.NumSequences()
	if i >= n {
		panic(fmt.Sprintf("encseq: sequence %d out of range [0,%d)", i, n))
	}
	if i > 0 {
		sep, err := s.separators.Select(i - 1)
		if err != nil {
			panic(err)
		}
		start = sep + 1
	}
	end := s.l.length
	if i < n-1 {
		sep, err := s.separators.Select(i)
		if err != nil {
			panic(err)
		}
		end = sep
	}
	return start, end - start
}

// Header returns the raw bytes of a caller defined extension header.
func (s *Sequence) Header(id uint16) ([]byte, error) {
	if id >= ReservedIDBase {
		return nil, fmt.Errorf("%w: %d", ErrReservedHeader, id)
	}
	return s.header(id)
}

// HeaderIDs returns the ids of all caller defined extension headers in
// file order.
func (s *Sequence) HeaderIDs() []uint16 {
	ids := make([]uint16, 0, len(s.headers))
	for id, e := range s.headers {
		if id < ReservedIDBase {
			ids = append(ids, e.ID)
		}
	}
	slices.SortFunc(ids, func(a, b uint16) int {
		return cmp.Compare(s.headers[a].Offset, s.headers[b].Offset)
	})
	return ids
}

func (s *Sequence) header(id uint16) ([]byte, error) {
	e, ok := s.headers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrHeaderNotFound, id)
	}
	stored := s.blobs[e.Offset : e.Offset+uint64(e.StoredLen)]
	raw, err := compress.Decompress(compress.Type(e.Compression), stored, int(e.RawLen))
	if err != nil {
		return nil, fmt.Errorf("encseq: extension header %d: %w", id, err)
	}
	if err := hash.Verify(raw, e.Checksum); err != nil {
		return nil, fmt.Errorf("encseq: extension header %d: %w", id, err)
	}
	if compress.Type(e.Compression) == compress.None {
		// Do not hand out a view into a mapping.
		raw = append([]byte(nil), raw...)
	}
	return raw, nil
}

// Select is not offered by the block encoding.
func (s *Sequence) Select(sym byte, n uint64) (uint64, error) {
	return 0, ErrUnsupported
}

// Close releases the underlying blob. Queries after Close are invalid.
func (s *Sequence) Close() error {
	s.closeOnce.Do(func() {
		if s.blob != nil {
			s.closeErr = s.blob.Close()
		}
		s.logger.Debug("encseq: closed", "index", s.name)
	})
	return s.closeErr
}

// SymbolAt returns the original alphabet code at pos.
func (s *Sequence) SymbolAt(pos uint64, h Hint) byte {
	return s.alpha.Untransform(s.TransformedSymbolAt(pos, h))
}

// TransformedSymbolAt returns the transformed symbol at pos.
func (s *Sequence) TransformedSymbolAt(pos uint64, h Hint) alphabet.Symbol {
	s.checkPos(pos)
	bh, pooled := s.acquire(h)
	bh.moveTo(pos / s.l.blockSize)
	sym := bh.syms[pos%s.l.blockSize]
	s.recycle(bh, pooled)
	return sym
}

// EncodedCharAt returns the original code at pos as seen through mode.
func (s *Sequence) EncodedCharAt(pos uint64, mode alphabet.ReadMode, h Hint) byte {
	s.checkPos(pos)
	return s.alpha.Apply(mode, s.SymbolAt(mode.Position(pos, s.l.length), h))
}

func (s *Sequence) checkPos(pos uint64) {
	if pos >= s.l.length {
		panic(fmt.Sprintf("encseq: position %d out of range [0,%d)", pos, s.l.length))
	}
}
