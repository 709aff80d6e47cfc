package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor compresses snapshot sections. Implementations must be safe
// for concurrent use. Like codecs, the compressor name is stored in the
// snapshot header so readers can select it on load.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// CompressorByName returns a built-in compressor by its stable name.
func CompressorByName(name string) (Compressor, bool) {
	switch name {
	case "none":
		return None{}, true
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// None stores sections uncompressed.
type None struct{}

func (None) Compress(data []byte) ([]byte, error)   { return data, nil }
func (None) Decompress(data []byte) ([]byte, error) { return data, nil }
func (None) Name() string                           { return "none" }

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	// Level 3 balances compression ratio vs speed
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Zstd compresses sections with zstd (better ratio, good for archived
// snapshots).
type Zstd struct{}

func (Zstd) Compress(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (Zstd) Decompress(data []byte) ([]byte, error) {
	dec := getZstdDecoder()
	defer zstdDecoderPool.Put(dec)
	return dec.DecodeAll(data, nil)
}

func (Zstd) Name() string { return "zstd" }

// LZ4 compresses sections with LZ4 block compression (fast, good for
// snapshots that are reloaded often).
//
// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 means the block is stored uncompressed, which
// happens when compression does not shrink the data.
type LZ4 struct{}

const lz4HeaderSize = 8

func (LZ4) Compress(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	buf := make([]byte, lz4HeaderSize+bound)

	n, err := lz4.CompressBlock(data, buf[lz4HeaderSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(data)))
	if n == 0 || n >= len(data) {
		// Incompressible, store as-is.
		binary.LittleEndian.PutUint32(buf[4:8], 0)
		return append(buf[:lz4HeaderSize], data...), nil
	}
	binary.LittleEndian.PutUint32(buf[4:8], uint32(n))
	return buf[:lz4HeaderSize+n], nil
}

func (LZ4) Decompress(data []byte) ([]byte, error) {
	if len(data) < lz4HeaderSize {
		return nil, errors.New("lz4 block too short")
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:4])
	compressedSize := binary.LittleEndian.Uint32(data[4:8])
	payload := data[lz4HeaderSize:]

	if compressedSize == 0 {
		if uint32(len(payload)) != uncompressedSize {
			return nil, errors.New("lz4 stored block size mismatch")
		}
		return payload, nil
	}

	if uint32(len(payload)) != compressedSize {
		return nil, errors.New("lz4 compressed block size mismatch")
	}

	out := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(payload, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if uint32(n) != uncompressedSize {
		return nil, errors.New("lz4 decompressed size mismatch")
	}
	return out, nil
}

func (LZ4) Name() string { return "lz4" }
