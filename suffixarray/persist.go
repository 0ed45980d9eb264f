package suffixarray

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/bitpack"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/internal/hash"
)

// ErrCorrupt is returned by Read for a malformed table.
var ErrCorrupt = errors.New("suffixarray: corrupt table")

const (
	magic         = "SUF1"
	formatVersion = 1
	headerSize    = 32
)

type fileHeader struct {
	Magic    [4]byte
	Version  uint16
	Mode     uint8
	Width    uint8
	N        uint64
	Checksum uint32
	_        [12]byte
}

// checksum covers the header, with Checksum zeroed, and the packed table.
func (h fileHeader) checksum(packed []byte) uint32 {
	h.Checksum = 0
	crc := hash.NewCRC32C()
	_ = binary.Write(crc, binary.LittleEndian, &h)
	_, _ = crc.Write(packed)
	return crc.Sum32()
}

// Write stores a under name.
func Write(ctx context.Context, store blobstore.Store, name string, a *Array) error {
	h := fileHeader{
		Version: formatVersion,
		Mode:    uint8(a.mode),
		Width:   uint8(a.width),
		N:       a.n,
	}
	copy(h.Magic[:], magic)
	h.Checksum = h.checksum(a.packed)

	var buf bytes.Buffer
	buf.Grow(headerSize + len(a.packed))
	_ = binary.Write(&buf, binary.LittleEndian, &h)
	buf.Write(a.packed)
	return store.Put(ctx, name, buf.Bytes())
}

// Read loads the table stored under name.
func Read(ctx context.Context, store blobstore.Store, name string) (*Array, error) {
	data, err := blobstore.Get(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("suffixarray: read %q: %w", name, err)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrCorrupt, name, len(data))
	}

	var h fileHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	mode := alphabet.ReadMode(h.Mode)
	switch {
	case string(h.Magic[:]) != magic:
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, h.Magic[:])
	case h.Version != formatVersion:
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.Version)
	case !mode.Valid():
		return nil, fmt.Errorf("%w: read mode %d", ErrCorrupt, h.Mode)
	case h.N == 0 || uint(h.Width) != bitpack.RequiredUint64Bits(h.N-1):
		return nil, fmt.Errorf("%w: %d entries of %d bits", ErrCorrupt, h.N, h.Width)
	}

	packed := data[headerSize:]
	if len(packed) != bitpack.ElemsFor(h.N*uint64(h.Width)) {
		return nil, fmt.Errorf("%w: %d packed bytes for %d entries", ErrCorrupt, len(packed), h.N)
	}
	if got := h.checksum(packed); got != h.Checksum {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, &hash.MismatchError{Want: h.Checksum, Got: got})
	}
	return &Array{mode: mode, n: h.N, width: uint(h.Width), packed: packed}, nil
}
