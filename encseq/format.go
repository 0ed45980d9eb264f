package encseq

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"github.com/hupe1980/seqdex/bitpack"
	"github.com/hupe1980/seqdex/internal/hash"
)

// File layout, all integers little endian:
//
//	fileHeader      headerSize bytes
//	header table    NumHeaders * tableEntrySize bytes
//	header blobs    BlobsLen bytes
//	constant width  NumBuckets * BucketBytes bytes
//	variable width  VarLen bytes
//
// Checksum is the CRC32C of the fixed header, with Checksum itself zeroed,
// followed by everything after it.
const (
	magic          = "EIS1"
	formatVersion  = 1
	headerSize     = 128
	tableEntrySize = 24
)

// Extension header ids at or above ReservedIDBase are used internally.
const (
	ReservedIDBase uint16 = 0xff00

	idAlphabet   uint16 = 0xfff0
	idSpecials   uint16 = 0xfff1
	idSeparators uint16 = 0xfff2
)

type fileHeader struct {
	Magic            [4]byte
	Version          uint16
	NumHeaders       uint16
	Length           uint64
	AlphabetSize     uint16
	CodeBits         uint8
	CountBits        uint8
	VarOffBits       uint8
	VarLenBits       uint8
	_                [2]byte
	BlockSize        uint32
	BucketBlocks     uint32
	CWBitsPerPos     uint32
	MaxVarBitsPerPos uint32
	NumBuckets       uint64
	BucketBytes      uint64
	TableLen         uint64
	BlobsLen         uint64
	CWLen            uint64
	VarLen           uint64
	VarBits          uint64
	Checksum         uint32
	_                [28]byte
}

type tableEntry struct {
	ID          uint16
	Compression uint8
	_           uint8
	StoredLen   uint32
	RawLen      uint32
	Checksum    uint32
	Offset      uint64
}

func (h *fileHeader) marshal() []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize)
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, h)
	return buf.Bytes()
}

// checksum returns the file checksum of h and body.
func (h fileHeader) checksum(body []byte) uint32 {
	h.Checksum = 0
	crc := hash.NewCRC32C()
	_, _ = crc.Write(h.marshal())
	_, _ = crc.Write(body)
	return crc.Sum32()
}

// layout holds the bit geometry derived from the build parameters.
type layout struct {
	length           uint64
	size             uint64 // transformed alphabet size
	blockSize        uint64
	bucketBlocks     uint64
	cwBitsPerPos     uint64
	maxVarBitsPerPos uint64

	codeBits   uint
	countBits  uint
	varOffBits uint
	varLenBits uint

	blockBits   uint64
	headBits    uint64
	bucketBytes uint64
	numBlocks   uint64
	numBuckets  uint64
}

// newLayout derives the geometry. ok is false when the block code does not
// fit 64 bits.
func newLayout(length, size, blockSize, bucketBlocks, cwBitsPerPos, maxVarBitsPerPos uint64) (layout, bool) {
	l := layout{
		length:           length,
		size:             size,
		blockSize:        blockSize,
		bucketBlocks:     bucketBlocks,
		cwBitsPerPos:     cwBitsPerPos,
		maxVarBitsPerPos: maxVarBitsPerPos,
	}

	// Largest code is size^blockSize - 1.
	table := uint64(1)
	for range blockSize {
		hi, lo := bits.Mul64(table, size)
		if hi != 0 {
			return l, false
		}
		table = lo
	}
	l.codeBits = bitpack.RequiredUint64Bits(table - 1)
	l.countBits = bitpack.RequiredUint64Bits(length)
	if maxVarBitsPerPos > 0 {
		l.varOffBits = bitpack.RequiredUint64Bits(maxVarBitsPerPos * length)
		l.varLenBits = bitpack.RequiredUint64Bits(maxVarBitsPerPos * blockSize)
	}

	l.blockBits = uint64(l.codeBits) + uint64(l.varLenBits) + cwBitsPerPos*blockSize
	l.headBits = size*uint64(l.countBits) + uint64(l.varOffBits)
	l.bucketBytes = uint64(bitpack.ElemsFor(l.headBits + bucketBlocks*l.blockBits))
	l.numBlocks = (length + blockSize - 1) / blockSize
	l.numBuckets = (l.numBlocks + bucketBlocks - 1) / bucketBlocks
	return l, true
}

func (l *layout) bucketBase(bucket uint64) bitpack.Offset {
	return bucket * l.bucketBytes * 8
}

func (l *layout) countOffset(bucket, sym uint64) bitpack.Offset {
	return l.bucketBase(bucket) + sym*uint64(l.countBits)
}

func (l *layout) varOffOffset(bucket uint64) bitpack.Offset {
	return l.bucketBase(bucket) + l.size*uint64(l.countBits)
}

func (l *layout) blockBase(block uint64) bitpack.Offset {
	return l.bucketBase(block/l.bucketBlocks) + l.headBits + (block%l.bucketBlocks)*l.blockBits
}

// cwExtraOffset is where the per-position extra bits of block start.
func (l *layout) cwExtraOffset(block uint64) bitpack.Offset {
	return l.blockBase(block) + uint64(l.codeBits) + uint64(l.varLenBits)
}

// blockLen is the number of real symbols in block.
func (l *layout) blockLen(block uint64) uint64 {
	start := block * l.blockSize
	return min(l.blockSize, l.length-start)
}

func (l *layout) cwBytes() uint64 {
	return l.numBuckets * l.bucketBytes
}
