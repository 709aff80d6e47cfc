package dataset

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressorRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("diorama snapshot section "), 200)

	// Random bytes defeat both algorithms and exercise the stored-block
	// path.
	rnd := rand.New(rand.NewSource(1))
	incompressible := make([]byte, 4096)
	_, err := rnd.Read(incompressible)
	require.NoError(t, err)

	inputs := map[string][]byte{
		"compressible":   compressible,
		"incompressible": incompressible,
		"empty":          {},
		"tiny":           []byte("x"),
	}

	for _, comp := range []Compressor{None{}, Zstd{}, LZ4{}} {
		for name, data := range inputs {
			packed, err := comp.Compress(data)
			require.NoError(t, err, "%s/%s", comp.Name(), name)

			got, err := comp.Decompress(packed)
			require.NoError(t, err, "%s/%s", comp.Name(), name)
			assert.Equal(t, data, got, "%s/%s", comp.Name(), name)
		}
	}
}

func TestZstdShrinksCompressibleData(t *testing.T) {
	data := bytes.Repeat([]byte("diorama snapshot section "), 200)

	packed, err := Zstd{}.Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(data))

	packed, err = LZ4{}.Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(data))
}

func TestCompressorByName(t *testing.T) {
	for _, name := range []string{"none", "zstd", "lz4"} {
		c, ok := CompressorByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := CompressorByName("snappy")
	assert.False(t, ok)
}

func TestLZ4RejectsCorruptBlocks(t *testing.T) {
	_, err := LZ4{}.Decompress([]byte{1, 2, 3})
	require.Error(t, err)

	packed, err := LZ4{}.Compress(bytes.Repeat([]byte("abc"), 100))
	require.NoError(t, err)

	packed[0] ^= 0xff // corrupt the recorded uncompressed size
	_, err = LZ4{}.Decompress(packed)
	require.Error(t, err)
}
