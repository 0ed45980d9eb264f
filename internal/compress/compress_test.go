package compress

import (
	"bytes"
	"testing"

	"github.com/hupe1980/seqdex/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("ACGTACGTTTGA"), 500)
	random := testutil.NewRNG(9).Codes(4096, 256, 0)

	for _, typ := range []Type{None, LZ4, ZSTD} {
		for name, data := range map[string][]byte{"repetitive": compressible, "random": random} {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				stored, used, err := Compress(typ, data)
				require.NoError(t, err)

				got, err := Decompress(used, stored, len(data))
				require.NoError(t, err)
				assert.Equal(t, data, got)
			})
		}
	}
}

func TestCompressShrinks(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 1000)

	for _, typ := range []Type{LZ4, ZSTD} {
		stored, used, err := Compress(typ, data)
		require.NoError(t, err)
		assert.Equal(t, typ, used)
		assert.Less(t, len(stored), len(data))
	}
}

func TestIncompressibleStoredRaw(t *testing.T) {
	data := []byte{7}

	stored, used, err := Compress(ZSTD, data)
	require.NoError(t, err)
	assert.Equal(t, None, used)
	assert.Equal(t, data, stored)
}

func TestDecompressCorrupt(t *testing.T) {
	data := bytes.Repeat([]byte("GATTACA"), 200)
	stored, used, err := Compress(LZ4, data)
	require.NoError(t, err)
	require.Equal(t, LZ4, used)

	_, err = Decompress(LZ4, stored, len(data)+1)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decompress(None, []byte{1, 2}, 3)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decompress(ZSTD, []byte("not zstd"), 10)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{None, LZ4, ZSTD} {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("brotli")
	assert.Error(t, err)
}
