package encseq

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/bitpack"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/internal/compress"
	"github.com/hupe1980/seqdex/internal/hash"
)

// Build encodes seq, a slice of original alphabet codes, and stores it under
// name. The returned Sequence serves queries from the bytes just written.
//
// On any failure after the arguments were validated the blob is deleted.
func Build(ctx context.Context, store blobstore.Store, name string, alpha *alphabet.Alphabet, seq []byte, opts ...Option) (*Sequence, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if alpha == nil {
		return nil, fmt.Errorf("%w: nil alphabet", ErrInvalidOption)
	}
	for i, c := range seq {
		if !alphabet.IsSpecial(c) && int(c) >= alpha.NumChars() {
			return nil, fmt.Errorf("%w: code %d at position %d", ErrInvalidSymbol, c, i)
		}
	}

	l, ok := newLayout(uint64(len(seq)), uint64(alpha.Size()), uint64(o.blockSize), uint64(o.bucketBlocks), o.cwBitsPerPos, o.maxVarBitsPerPos)
	if !ok {
		return nil, fmt.Errorf("%w: %d^%d", ErrTableTooLarge, alpha.Size(), o.blockSize)
	}

	start := time.Now()
	file, err := assemble(ctx, alpha, seq, &l, &o)
	if err == nil {
		err = writeBlob(ctx, store, name, file)
	}
	if err != nil {
		if derr := store.Delete(context.WithoutCancel(ctx), name); derr != nil {
			o.logger.Warn("encseq: cleanup failed", "index", name, "error", derr)
		}
		return nil, err
	}

	s, err := parse(name, file, o.logger)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("encseq: built",
		"index", name,
		"length", l.length,
		"block_size", l.blockSize,
		"buckets", l.numBuckets,
		"bytes", len(file),
		"duration", time.Since(start))
	return s, nil
}

func writeBlob(ctx context.Context, store blobstore.Store, name string, file []byte) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(file); err != nil {
		return errors.Join(err, w.Abort())
	}
	return w.Close()
}

// assemble produces the complete file image.
func assemble(ctx context.Context, alpha *alphabet.Alphabet, seq []byte, l *layout, o *options) ([]byte, error) {
	cw, vw, varBits, err := encodeBody(ctx, alpha, seq, l, o)
	if err != nil {
		return nil, err
	}

	table, blobs, err := encodeHeaders(alpha, seq, o)
	if err != nil {
		return nil, err
	}

	var tbuf bytes.Buffer
	tbuf.Grow(len(table) * tableEntrySize)
	_ = binary.Write(&tbuf, binary.LittleEndian, table)

	bodyLen := tbuf.Len() + len(blobs) + len(cw) + len(vw)
	file := make([]byte, headerSize, headerSize+bodyLen)
	file = append(file, tbuf.Bytes()...)
	file = append(file, blobs...)
	file = append(file, cw...)
	file = append(file, vw...)

	h := fileHeader{
		Version:          formatVersion,
		NumHeaders:       uint16(len(table)),
		Length:           l.length,
		AlphabetSize:     uint16(l.size),
		CodeBits:         uint8(l.codeBits),
		CountBits:        uint8(l.countBits),
		VarOffBits:       uint8(l.varOffBits),
		VarLenBits:       uint8(l.varLenBits),
		BlockSize:        uint32(l.blockSize),
		BucketBlocks:     uint32(l.bucketBlocks),
		CWBitsPerPos:     uint32(l.cwBitsPerPos),
		MaxVarBitsPerPos: uint32(l.maxVarBitsPerPos),
		NumBuckets:       l.numBuckets,
		BucketBytes:      l.bucketBytes,
		TableLen:         uint64(tbuf.Len()),
		BlobsLen:         uint64(len(blobs)),
		CWLen:            uint64(len(cw)),
		VarLen:           uint64(len(vw)),
		VarBits:          varBits,
	}
	copy(h.Magic[:], magic)
	h.Checksum = h.checksum(file[headerSize:])
	copy(file, h.marshal())
	return file, nil
}

func encodeBody(ctx context.Context, alpha *alphabet.Alphabet, seq []byte, l *layout, o *options) (cw, vw bitpack.String, varBits uint64, err error) {
	cw = make(bitpack.String, l.cwBytes())
	if o.maxVarBitsPerPos > 0 {
		vw = bitpack.New(min(o.maxVarBitsPerPos*l.length, 1<<16))
	}
	counts := make([]uint64, l.size)

	for block := range l.numBlocks {
		if block%l.bucketBlocks == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, 0, err
			}
			bucket := block / l.bucketBlocks
			for sym, c := range counts {
				bitpack.StoreUint64(cw, l.countOffset(bucket, uint64(sym)), l.countBits, c)
			}
			if l.varOffBits > 0 {
				bitpack.StoreUint64(cw, l.varOffOffset(bucket), l.varOffBits, varBits)
			}
		}

		start := block * l.blockSize
		n := l.blockLen(block)
		var code uint64
		for i := range l.blockSize {
			var sym uint64
			if i < n {
				sym = uint64(alpha.Transform(seq[start+i]))
				counts[sym]++
			}
			code = code*l.size + sym
		}
		base := l.blockBase(block)
		bitpack.StoreUint64(cw, base, l.codeBits, code)

		if o.inserter == nil {
			continue
		}
		limit := o.maxVarBitsPerPos * n
		vw = growBits(vw, varBits+limit)
		written, err := o.inserter.InsertBits(cw, l.cwExtraOffset(block), vw, varBits, start, n)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encseq: bit inserter at block %d: %w", block, err)
		}
		if written > limit {
			return nil, nil, 0, fmt.Errorf("%w: %d bits for block %d, limit %d", ErrMalformedBits, written, block, limit)
		}
		if l.varLenBits > 0 {
			bitpack.StoreUint64(cw, base+uint64(l.codeBits), l.varLenBits, written)
		}
		varBits += written
	}
	return cw, vw[:bitpack.ElemsFor(varBits)], varBits, nil
}

// growBits returns bs with room for at least numBits bits, doubling the
// allocation.
func growBits(bs bitpack.String, numBits uint64) bitpack.String {
	need := bitpack.ElemsFor(numBits)
	if need <= len(bs) {
		return bs
	}
	grown := make(bitpack.String, max(need, 2*len(bs)))
	copy(grown, bs)
	return grown
}

func encodeHeaders(alpha *alphabet.Alphabet, seq []byte, o *options) ([]tableEntry, []byte, error) {
	specials := roaring64.New()
	separators := roaring64.New()
	for i, c := range seq {
		if alphabet.IsSpecial(c) {
			specials.Add(uint64(i))
			if c == alphabet.Separator {
				separators.Add(uint64(i))
			}
		}
	}
	specials.RunOptimize()
	separators.RunOptimize()

	alphaBytes, err := alpha.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}

	var (
		table []tableEntry
		blobs []byte
	)
	add := func(id uint16, raw []byte) error {
		stored, ct, err := compress.Compress(o.compression, raw)
		if err != nil {
			return fmt.Errorf("encseq: compress header %d: %w", id, err)
		}
		table = append(table, tableEntry{
			ID:          id,
			Compression: uint8(ct),
			StoredLen:   uint32(len(stored)),
			RawLen:      uint32(len(raw)),
			Checksum:    hash.CRC32C(raw),
			Offset:      uint64(len(blobs)),
		})
		blobs = append(blobs, stored...)
		return nil
	}

	if err := add(idAlphabet, alphaBytes); err != nil {
		return nil, nil, err
	}
	for _, rb := range []struct {
		id uint16
		bm *roaring64.Bitmap
	}{{idSpecials, specials}, {idSeparators, separators}} {
		var buf bytes.Buffer
		if _, err := rb.bm.WriteTo(&buf); err != nil {
			return nil, nil, fmt.Errorf("encseq: serialize bitmap: %w", err)
		}
		if err := add(rb.id, buf.Bytes()); err != nil {
			return nil, nil, err
		}
	}

	for _, h := range o.headers {
		var buf bytes.Buffer
		buf.Grow(int(h.Size))
		if err := h.Write(&buf); err != nil {
			return nil, nil, fmt.Errorf("encseq: extension header %d: %w", h.ID, err)
		}
		if buf.Len() != int(h.Size) {
			return nil, nil, &HeaderSizeError{ID: h.ID, Declared: h.Size, Written: buf.Len()}
		}
		if err := add(h.ID, buf.Bytes()); err != nil {
			return nil, nil, err
		}
	}
	return table, blobs, nil
}
