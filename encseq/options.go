package encseq

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/seqdex/internal/compress"
)

const (
	// DefaultBlockSize is the number of symbols per block.
	DefaultBlockSize = 4
	// DefaultBucketBlocks is the number of blocks between rank checkpoints.
	DefaultBucketBlocks = 16
)

// ExtHeader is a caller defined blob stored in front of the encoded body.
type ExtHeader struct {
	ID   uint16
	Size uint32
	// Write must write exactly Size bytes.
	Write func(w io.Writer) error
}

type options struct {
	blockSize        int
	bucketBlocks     int
	headers          []ExtHeader
	inserter         BitInserter
	cwBitsPerPos     uint64
	maxVarBitsPerPos uint64
	compression      compress.Type
	logger           *slog.Logger
}

// Option configures Build and Load. Load only honours WithLogger.
type Option func(*options)

func defaultOptions() options {
	return options{
		blockSize:    DefaultBlockSize,
		bucketBlocks: DefaultBucketBlocks,
		compression:  compress.None,
		logger:       slog.New(slog.DiscardHandler),
	}
}

// WithBlockSize sets the number of symbols per block.
func WithBlockSize(n int) Option {
	return func(o *options) { o.blockSize = n }
}

// WithBucketBlocks sets the number of blocks between rank checkpoints.
func WithBucketBlocks(n int) Option {
	return func(o *options) { o.bucketBlocks = n }
}

// WithExtHeaders adds extension headers.
func WithExtHeaders(headers ...ExtHeader) Option {
	return func(o *options) { o.headers = append(o.headers, headers...) }
}

// WithBitInserter attaches extra bits to every block. cwBitsPerPos bits per
// position are reserved in the constant-width record; at most
// maxVarBitsPerPos bits per position may go to the variable-width region.
func WithBitInserter(bi BitInserter, cwBitsPerPos, maxVarBitsPerPos uint64) Option {
	return func(o *options) {
		o.inserter = bi
		o.cwBitsPerPos = cwBitsPerPos
		o.maxVarBitsPerPos = maxVarBitsPerPos
	}
}

// WithHeaderCompression compresses extension headers that shrink enough.
func WithHeaderCompression(t compress.Type) Option {
	return func(o *options) { o.compression = t }
}

// WithLogger sets the logger for build and load milestones.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func (o *options) validate() error {
	if o.blockSize < 1 || o.blockSize > 64 {
		return fmt.Errorf("%w: block size %d, want 1..64", ErrInvalidOption, o.blockSize)
	}
	if o.bucketBlocks < 1 {
		return fmt.Errorf("%w: bucket blocks %d, want > 0", ErrInvalidOption, o.bucketBlocks)
	}
	if o.inserter == nil && (o.cwBitsPerPos > 0 || o.maxVarBitsPerPos > 0) {
		return fmt.Errorf("%w: extra bits without a bit inserter", ErrInvalidOption)
	}
	if o.cwBitsPerPos > 64 || o.maxVarBitsPerPos > 64 {
		return fmt.Errorf("%w: more than 64 extra bits per position", ErrInvalidOption)
	}
	seen := make(map[uint16]bool, len(o.headers))
	for _, h := range o.headers {
		if h.ID >= ReservedIDBase {
			return fmt.Errorf("%w: %d", ErrReservedHeader, h.ID)
		}
		if seen[h.ID] {
			return fmt.Errorf("%w: duplicate extension header %d", ErrInvalidOption, h.ID)
		}
		if h.Write == nil {
			return fmt.Errorf("%w: extension header %d has no writer", ErrInvalidOption, h.ID)
		}
		seen[h.ID] = true
	}
	return nil
}
