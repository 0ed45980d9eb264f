// Package compress compresses extension header blobs of an index file.
//
// The header table records the algorithm and the raw length of every blob,
// so stored bytes carry no framing of their own.
package compress

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression algorithm.
type Type uint8

const (
	// None stores bytes as they are.
	None Type = 0
	// LZ4 uses pierrec/lz4 block compression.
	LZ4 Type = 1
	// ZSTD uses klauspost/compress zstd.
	ZSTD Type = 2
)

// ErrCorrupt is returned when stored bytes do not decode to the recorded size.
var ErrCorrupt = errors.New("compress: corrupt block")

// minSaving is the fraction a blob must shrink by to be stored compressed.
const minSaving = 0.1

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType parses "none", "lz4" or "zstd".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	}
	return None, fmt.Errorf("compress: unknown type %q", s)
}

var (
	encoders sync.Pool
	decoders sync.Pool
)

func getEncoder() (*zstd.Encoder, error) {
	if v := encoders.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getDecoder() (*zstd.Decoder, error) {
	if v := decoders.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// Compress encodes data with t. It returns the bytes to store and the type
// actually used: None when compression does not pay off.
func Compress(t Type, data []byte) ([]byte, Type, error) {
	if t == None || len(data) == 0 {
		return data, None, nil
	}

	var out []byte
	switch t {
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, None, err
		}
		out = buf[:n]
	case ZSTD:
		enc, err := getEncoder()
		if err != nil {
			return nil, None, err
		}
		out = enc.EncodeAll(data, nil)
		encoders.Put(enc)
	default:
		return nil, None, fmt.Errorf("compress: unknown type %d", t)
	}

	if len(out) == 0 || float64(len(out)) > float64(len(data))*(1-minSaving) {
		return data, None, nil
	}
	return out, t, nil
}

// Decompress decodes stored bytes written by Compress with type t back into
// rawLen bytes.
func Decompress(t Type, stored []byte, rawLen int) ([]byte, error) {
	switch t {
	case None:
		if len(stored) != rawLen {
			return nil, fmt.Errorf("%w: %d stored bytes, want %d", ErrCorrupt, len(stored), rawLen)
		}
		return stored, nil
	case LZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(stored, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes, want %d", ErrCorrupt, n, rawLen)
		}
		return out, nil
	case ZSTD:
		dec, err := getDecoder()
		if err != nil {
			return nil, err
		}
		defer decoders.Put(dec)
		out, err := dec.DecodeAll(stored, make([]byte, 0, rawLen))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if len(out) != rawLen {
			return nil, fmt.Errorf("%w: zstd produced %d bytes, want %d", ErrCorrupt, len(out), rawLen)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("compress: unknown type %d", t)
	}
}
