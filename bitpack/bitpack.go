package bitpack

import (
	"fmt"
	"math/bits"
)

// MaxWidth is the widest field the codec handles.
const MaxWidth = 64

// Offset addresses a single bit in a String.
type Offset = uint64

// String is a bit string backed by bytes, most significant bit first.
type String []byte

// ElemsFor returns the number of bytes needed to hold numBits bits.
func ElemsFor(numBits uint64) int {
	return int((numBits + 7) >> 3)
}

// New allocates a zeroed String holding at least numBits bits.
func New(numBits uint64) String {
	return make(String, ElemsFor(numBits))
}

// Bits returns the bit capacity of the string.
func (bs String) Bits() uint64 {
	return uint64(len(bs)) << 3
}

func checkWidth(width uint) {
	if width == 0 || width > MaxWidth {
		panic(fmt.Sprintf("bitpack: invalid bit width %d", width))
	}
}

func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}

// StoreUint64 writes the low width bits of v at offset.
func StoreUint64(bs String, offset Offset, width uint, v uint64) {
	checkWidth(width)
	v &= lowMask(width)
	idx := offset >> 3
	used := uint(offset & 7)
	left := width
	for left > 0 {
		avail := 8 - used
		n := min(avail, left)
		chunk := byte((v >> (left - n)) & lowMask(n))
		shift := avail - n
		mask := byte(lowMask(n) << shift)
		bs[idx] = bs[idx]&^mask | chunk<<shift
		left -= n
		idx++
		used = 0
	}
}

// GetUint64 reads the width bit unsigned field at offset.
func GetUint64(bs String, offset Offset, width uint) uint64 {
	checkWidth(width)
	idx := offset >> 3
	used := uint(offset & 7)
	left := width
	var v uint64
	for left > 0 {
		avail := 8 - used
		n := min(avail, left)
		shift := avail - n
		v = v<<n | uint64(bs[idx]>>shift)&lowMask(n)
		left -= n
		idx++
		used = 0
	}
	return v
}

// StoreInt64 writes the two's complement representation of v, truncated to
// width bits, at offset.
func StoreInt64(bs String, offset Offset, width uint, v int64) {
	StoreUint64(bs, offset, width, uint64(v))
}

// GetInt64 reads a width bit two's complement field and sign-extends it.
func GetInt64(bs String, offset Offset, width uint) int64 {
	return signExtend(GetUint64(bs, offset, width), width)
}

func signExtend(u uint64, width uint) int64 {
	shift := 64 - width
	return int64(u<<shift) >> shift
}

// StoreUint32 stores the low width bits of v at offset.
func StoreUint32(bs String, offset Offset, width uint, v uint32) {
	StoreUint64(bs, offset, width, uint64(v))
}

// GetUint32 reads a width bit field of at most 32 bits.
func GetUint32(bs String, offset Offset, width uint) uint32 {
	if width > 32 {
		panic(fmt.Sprintf("bitpack: width %d exceeds 32 bit field", width))
	}
	return uint32(GetUint64(bs, offset, width))
}

// StoreUint8 stores the low width bits of v at offset.
func StoreUint8(bs String, offset Offset, width uint, v uint8) {
	StoreUint64(bs, offset, width, uint64(v))
}

// GetUint8 reads a width bit field of at most 8 bits.
func GetUint8(bs String, offset Offset, width uint) uint8 {
	if width > 8 {
		panic(fmt.Sprintf("bitpack: width %d exceeds 8 bit field", width))
	}
	return uint8(GetUint64(bs, offset, width))
}

// StoreInt32 stores v in two's complement in width bits.
func StoreInt32(bs String, offset Offset, width uint, v int32) {
	StoreUint64(bs, offset, width, uint64(int64(v)))
}

// GetInt32 reads a sign extended width bit field of at most 32 bits.
func GetInt32(bs String, offset Offset, width uint) int32 {
	if width > 32 {
		panic(fmt.Sprintf("bitpack: width %d exceeds 32 bit field", width))
	}
	return int32(GetInt64(bs, offset, width))
}

// RequiredUint64Bits returns the smallest width that round-trips v.
func RequiredUint64Bits(v uint64) uint {
	if v == 0 {
		return 1
	}
	return uint(bits.Len64(v))
}

// RequiredInt64Bits returns the smallest width whose two's complement range
// contains v.
func RequiredInt64Bits(v int64) uint {
	if v < 0 {
		v = ^v
	}
	return uint(bits.Len64(uint64(v))) + 1
}

// Copy copies width bits from src at srcOff to dst at dstOff.
func Copy(dst String, dstOff Offset, src String, srcOff Offset, width uint64) {
	for width > 0 {
		n := uint(min(width, MaxWidth))
		StoreUint64(dst, dstOff, n, GetUint64(src, srcOff, n))
		dstOff += uint64(n)
		srcOff += uint64(n)
		width -= uint64(n)
	}
}
