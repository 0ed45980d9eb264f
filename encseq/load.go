package encseq

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/bitpack"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/internal/hash"
	"github.com/hupe1980/seqdex/internal/mmap"
)

type advisor interface {
	Advise(mmap.AccessPattern) error
}

// Load opens the sequence stored under name. Mappable blobs are used in
// place; others are read into memory and closed.
func Load(ctx context.Context, store blobstore.Store, name string, opts ...Option) (*Sequence, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("encseq: open %q: %w", name, err)
	}
	data, err := blobstore.ReadAll(b)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("encseq: read %q: %w", name, err)
	}

	var owner blobstore.Blob
	if _, ok := b.(blobstore.Mappable); ok {
		owner = b
		if a, ok := b.(advisor); ok {
			if err := a.Advise(mmap.AccessRandom); err != nil {
				o.logger.Debug("encseq: advise failed", "index", name, "error", err)
			}
		}
	} else if err := b.Close(); err != nil {
		return nil, err
	}

	s, err := parse(name, data, o.logger)
	if err != nil {
		if owner != nil {
			_ = owner.Close()
		}
		return nil, err
	}
	s.blob = owner
	o.logger.Debug("encseq: loaded", "index", name, "length", s.l.length, "mapped", owner != nil)
	return s, nil
}

func parse(name string, data []byte, logger *slog.Logger) (*Sequence, error) {
	bad := func(reason string, err error) error {
		return &FormatError{Name: name, Reason: reason, Err: err}
	}

	if len(data) < headerSize {
		return nil, bad(fmt.Sprintf("%d bytes, shorter than the header", len(data)), nil)
	}
	var h fileHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &h); err != nil {
		return nil, bad("header", err)
	}
	if string(h.Magic[:]) != magic {
		return nil, bad(fmt.Sprintf("bad magic %q", h.Magic[:]), nil)
	}
	if h.Version != formatVersion {
		return nil, bad(fmt.Sprintf("unsupported version %d", h.Version), nil)
	}

	body := data[headerSize:]
	want := h.TableLen + h.BlobsLen + h.CWLen + h.VarLen
	if want < h.TableLen || uint64(len(body)) != want {
		return nil, bad(fmt.Sprintf("body is %d bytes, sections need %d", len(body), want), nil)
	}
	if got := h.checksum(body); got != h.Checksum {
		return nil, bad("checksum", &hash.MismatchError{Want: h.Checksum, Got: got})
	}
	if h.TableLen != uint64(h.NumHeaders)*tableEntrySize {
		return nil, bad(fmt.Sprintf("header table is %d bytes for %d entries", h.TableLen, h.NumHeaders), nil)
	}
	if h.BucketBytes == 0 && h.CWLen > 0 || h.BucketBytes > 0 && h.CWLen%h.BucketBytes != 0 {
		return nil, bad(fmt.Sprintf("constant-width region of %d bytes is not a whole number of %d byte buckets", h.CWLen, h.BucketBytes), nil)
	}

	switch {
	case h.BlockSize == 0 || h.BlockSize > 64:
		return nil, bad(fmt.Sprintf("block size %d outside 1..64", h.BlockSize), nil)
	case h.BucketBlocks == 0:
		return nil, bad("zero bucket blocks", nil)
	case h.AlphabetSize < 2:
		return nil, bad(fmt.Sprintf("alphabet size %d", h.AlphabetSize), nil)
	case h.CWBitsPerPos > 64 || h.MaxVarBitsPerPos > 64:
		return nil, bad("more than 64 extra bits per position", nil)
	}

	l, ok := newLayout(h.Length, uint64(h.AlphabetSize), uint64(h.BlockSize), uint64(h.BucketBlocks), uint64(h.CWBitsPerPos), uint64(h.MaxVarBitsPerPos))
	switch {
	case !ok:
		return nil, bad("block code table does not fit 64 bits", nil)
	case uint8(l.codeBits) != h.CodeBits, uint8(l.countBits) != h.CountBits,
		uint8(l.varOffBits) != h.VarOffBits, uint8(l.varLenBits) != h.VarLenBits:
		return nil, bad("field widths do not match block parameters", nil)
	case l.bucketBytes != h.BucketBytes || l.numBuckets != h.NumBuckets:
		return nil, bad("bucket geometry does not match block parameters", nil)
	case h.CWLen != l.cwBytes():
		return nil, bad(fmt.Sprintf("constant-width region holds %d buckets, want %d", h.CWLen/h.BucketBytes, h.NumBuckets), nil)
	case uint64(bitpack.ElemsFor(h.VarBits)) != h.VarLen:
		return nil, bad("variable-width region length does not match its bit count", nil)
	}

	tableBytes := body[:h.TableLen]
	blobs := body[h.TableLen : h.TableLen+h.BlobsLen]
	cwStart := h.TableLen + h.BlobsLen

	table := make([]tableEntry, h.NumHeaders)
	if err := binary.Read(bytes.NewReader(tableBytes), binary.LittleEndian, table); err != nil {
		return nil, bad("header table", err)
	}
	headers := make(map[uint16]tableEntry, len(table))
	for _, e := range table {
		if e.Offset+uint64(e.StoredLen) > uint64(len(blobs)) || e.Offset+uint64(e.StoredLen) < e.Offset {
			return nil, bad(fmt.Sprintf("extension header %d out of bounds", e.ID), nil)
		}
		if _, dup := headers[e.ID]; dup {
			return nil, bad(fmt.Sprintf("duplicate extension header %d", e.ID), nil)
		}
		headers[e.ID] = e
	}

	s := &Sequence{
		name:    name,
		l:       l,
		cw:      bitpack.String(body[cwStart : cwStart+h.CWLen]),
		vw:      bitpack.String(body[cwStart+h.CWLen:]),
		varBits: h.VarBits,
		blobs:   blobs,
		headers: headers,
		logger:  logger,
	}

	raw, err := s.header(idAlphabet)
	if err != nil {
		return nil, bad("alphabet header", err)
	}
	alpha := new(alphabet.Alphabet)
	if err := alpha.UnmarshalBinary(raw); err != nil {
		return nil, bad("alphabet header", err)
	}
	if uint64(alpha.Size()) != l.size {
		return nil, bad(fmt.Sprintf("alphabet size %d, header says %d", alpha.Size(), l.size), nil)
	}
	s.alpha = alpha

	if s.specials, err = s.bitmap(idSpecials); err != nil {
		return nil, bad("special positions", err)
	}
	if s.separators, err = s.bitmap(idSeparators); err != nil {
		return nil, bad("separator positions", err)
	}
	return s, nil
}

func (s *Sequence) bitmap(id uint16) (*roaring64.Bitmap, error) {
	raw, err := s.header(id)
	if err != nil {
		return nil, err
	}
	bm := roaring64.New()
	if _, err := bm.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	if bm.GetCardinality() > 0 && bm.Maximum() >= s.l.length {
		return nil, errors.New("position beyond sequence end")
	}
	return bm, nil
}
