package bitpack

import (
	"fmt"
	"testing"

	"github.com/hupe1980/seqdex/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomField(rng *testutil.RNG, width uint) uint64 {
	return rng.Uint64() & lowMask(width)
}

func TestUint64RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(1)

	for width := uint(1); width <= MaxWidth; width++ {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			const n = 37
			bs := New(uint64(n)*uint64(width) + 11)
			vals := make([]uint64, n)
			off := Offset(11) // unaligned start
			for i := range vals {
				vals[i] = randomField(rng, width)
				StoreUint64(bs, off+Offset(i)*Offset(width), width, vals[i])
			}
			for i, want := range vals {
				assert.Equal(t, want, GetUint64(bs, off+Offset(i)*Offset(width), width))
			}
		})
	}
}

func TestStoreDoesNotTouchNeighbours(t *testing.T) {
	bs := New(64)
	for i := range bs {
		bs[i] = 0xff
	}

	StoreUint64(bs, 5, 7, 0)

	assert.Equal(t, uint64(0x1f), GetUint64(bs, 0, 5))
	assert.Equal(t, uint64(0), GetUint64(bs, 5, 7))
	assert.Equal(t, uint64(0xf), GetUint64(bs, 12, 4))
}

func TestStoreTruncatesToWidth(t *testing.T) {
	bs := New(16)

	StoreUint64(bs, 3, 4, 0xfff)

	assert.Equal(t, uint64(0xf), GetUint64(bs, 3, 4))
	assert.Equal(t, uint64(0), GetUint64(bs, 0, 3))
	assert.Equal(t, uint64(0), GetUint64(bs, 7, 9))
}

func TestMSBFirstLayout(t *testing.T) {
	bs := New(8)

	StoreUint64(bs, 0, 3, 0b101)

	assert.Equal(t, byte(0b1010_0000), bs[0])
}

func TestInt64RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(2)

	for width := uint(1); width <= MaxWidth; width++ {
		bs := New(uint64(width) + 3)
		for range 20 {
			v := signExtend(randomField(rng, width), width)
			StoreInt64(bs, 3, width, v)
			assert.Equal(t, v, GetInt64(bs, 3, width), "width %d", width)
		}
	}
}

func TestInt64Extremes(t *testing.T) {
	tests := []struct {
		width uint
		v     int64
	}{
		{1, -1},
		{1, 0},
		{8, -128},
		{8, 127},
		{33, -(1 << 32)},
		{64, -1 << 63},
		{64, 1<<63 - 1},
	}
	bs := New(128)
	for _, tc := range tests {
		StoreInt64(bs, 9, tc.width, tc.v)
		assert.Equal(t, tc.v, GetInt64(bs, 9, tc.width), "width %d", tc.width)
	}
}

func TestSmallVariants(t *testing.T) {
	bs := New(64)

	StoreUint32(bs, 1, 20, 0xabcde)
	assert.Equal(t, uint32(0xabcde), GetUint32(bs, 1, 20))

	StoreUint8(bs, 30, 5, 17)
	assert.Equal(t, uint8(17), GetUint8(bs, 30, 5))

	StoreInt32(bs, 40, 12, -300)
	assert.Equal(t, int32(-300), GetInt32(bs, 40, 12))

	assert.Panics(t, func() { GetUint8(bs, 0, 9) })
	assert.Panics(t, func() { GetUint32(bs, 0, 33) })
}

func TestInvalidWidthPanics(t *testing.T) {
	bs := New(128)

	assert.Panics(t, func() { StoreUint64(bs, 0, 0, 1) })
	assert.Panics(t, func() { GetUint64(bs, 0, 65) })
	assert.Panics(t, func() { GetUniformUint64Array(bs, 0, 0, make([]uint64, 1)) })
	assert.Panics(t, func() { Compare(bs, 0, 65, bs, 0, 3) })
}

func TestRequiredBits(t *testing.T) {
	assert.Equal(t, uint(1), RequiredUint64Bits(0))
	assert.Equal(t, uint(1), RequiredUint64Bits(1))
	assert.Equal(t, uint(2), RequiredUint64Bits(2))
	assert.Equal(t, uint(8), RequiredUint64Bits(255))
	assert.Equal(t, uint(9), RequiredUint64Bits(256))
	assert.Equal(t, uint(64), RequiredUint64Bits(^uint64(0)))

	assert.Equal(t, uint(1), RequiredInt64Bits(0))
	assert.Equal(t, uint(1), RequiredInt64Bits(-1))
	assert.Equal(t, uint(2), RequiredInt64Bits(1))
	assert.Equal(t, uint(8), RequiredInt64Bits(-128))
	assert.Equal(t, uint(9), RequiredInt64Bits(128))
	assert.Equal(t, uint(64), RequiredInt64Bits(-1<<63))

	rng := testutil.NewRNG(3)
	for range 200 {
		v := rng.Uint64() >> uint(rng.Intn(64))
		w := RequiredUint64Bits(v)
		bs := New(64)
		StoreUint64(bs, 0, w, v)
		assert.Equal(t, v, GetUint64(bs, 0, w))

		s := int64(rng.Uint64()) >> uint(rng.Intn(64))
		ws := RequiredInt64Bits(s)
		StoreInt64(bs, 0, ws, s)
		assert.Equal(t, s, GetInt64(bs, 0, ws))
	}
}

func TestCompare(t *testing.T) {
	rng := testutil.NewRNG(4)
	a := New(128)
	b := New(128)

	for range 500 {
		wa := uint(rng.Intn(64) + 1)
		wb := uint(rng.Intn(64) + 1)
		x := randomField(rng, wa)
		y := randomField(rng, wb)
		if rng.Intn(4) == 0 {
			y = x & lowMask(wb)
		}
		offA := Offset(rng.Intn(60))
		offB := Offset(rng.Intn(60))
		StoreUint64(a, offA, wa, x)
		StoreUint64(b, offB, wb, y)

		want := 0
		switch {
		case x < y:
			want = -1
		case x > y:
			want = 1
		}
		require.Equal(t, want, Compare(a, offA, wa, b, offB, wb), "x=%d/%d y=%d/%d", x, wa, y, wb)
	}
}

func TestCompareInt(t *testing.T) {
	rng := testutil.NewRNG(5)
	a := New(128)
	b := New(128)

	for range 500 {
		wa := uint(rng.Intn(64) + 1)
		wb := uint(rng.Intn(64) + 1)
		x := signExtend(randomField(rng, wa), wa)
		y := signExtend(randomField(rng, wb), wb)
		StoreInt64(a, 7, wa, x)
		StoreInt64(b, 1, wb, y)

		want := 0
		switch {
		case x < y:
			want = -1
		case x > y:
			want = 1
		}
		require.Equal(t, want, CompareInt(a, 7, wa, b, 1, wb))
	}
}

func TestUniformArraysMatchSingleCalls(t *testing.T) {
	rng := testutil.NewRNG(6)

	for width := uint(1); width <= MaxWidth; width++ {
		n := rng.Intn(50) + 1
		off := Offset(rng.Intn(16))
		vals := make([]uint64, n)
		for i := range vals {
			vals[i] = rng.Uint64()
		}
		total := off + Offset(n)*Offset(width) + 16

		batch := New(total)
		single := New(total)
		for i := range batch {
			b := byte(rng.Intn(256))
			batch[i] = b
			single[i] = b
		}

		StoreUniformUint64Array(batch, off, width, vals)
		for i, v := range vals {
			StoreUint64(single, off+Offset(i)*Offset(width), width, v)
		}
		require.Equal(t, single, batch, "width %d", width)

		got := make([]uint64, n)
		GetUniformUint64Array(batch, off, width, got)
		for i := range got {
			assert.Equal(t, GetUint64(single, off+Offset(i)*Offset(width), width), got[i])
		}
	}
}

func TestUniformInt64Arrays(t *testing.T) {
	rng := testutil.NewRNG(7)
	const width = 13
	vals := make([]int64, 40)
	for i := range vals {
		vals[i] = signExtend(randomField(rng, width), width)
	}
	bs := New(5 + 40*width)

	StoreUniformInt64Array(bs, 5, width, vals)
	got := make([]int64, len(vals))
	GetUniformInt64Array(bs, 5, width, got)

	assert.Equal(t, vals, got)
	for i, v := range vals {
		assert.Equal(t, v, GetInt64(bs, 5+Offset(i)*width, width))
	}
}

func TestCopy(t *testing.T) {
	rng := testutil.NewRNG(8)
	src := New(300)
	for i := range src {
		src[i] = byte(rng.Intn(256))
	}
	dst := New(300)

	Copy(dst, 3, src, 17, 200)

	for i := Offset(0); i < 200; i += 8 {
		assert.Equal(t, GetUint64(src, 17+i, 8), GetUint64(dst, 3+i, 8))
	}
}
