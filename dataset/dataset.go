// Package dataset persists embedding datasets as immutable snapshot blobs.
//
// A snapshot bundles the point matrix with its documents in a single
// self-describing blob: the header records the codec and compressor by
// name, so any reader with the same built-ins can load a snapshot
// regardless of how it was written.
package dataset

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/diorama/blobstore"
	"github.com/hupe1980/diorama/codec"
	"github.com/hupe1980/diorama/document"
	"github.com/hupe1980/diorama/resource"
)

// Snapshot format:
//
//	[4]byte  magic "DIOR"
//	uint8    format version (currently 1)
//	uint8    codec name length, followed by the name
//	uint8    compressor name length, followed by the name
//	uint32   rows
//	uint32   dims
//	uint64   compressed points section length
//	uint64   compressed documents section length
//	[]byte   points section (row-major little-endian float32)
//	[]byte   documents section (codec-encoded document slice)
var magic = [4]byte{'D', 'I', 'O', 'R'}

const formatVersion = 1

// ErrBadSnapshot is returned when a blob is not a valid snapshot.
var ErrBadSnapshot = errors.New("malformed dataset snapshot")

// Dataset pairs a point matrix with the documents it was embedded from.
// Row i of Points belongs to Documents[i].
type Dataset struct {
	Points    [][]float32
	Documents []document.Document
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Points)
}

// Validate checks that points and documents agree in length and that
// the point matrix is rectangular.
func (d *Dataset) Validate() error {
	if len(d.Points) != len(d.Documents) {
		return fmt.Errorf("dataset has %d points but %d documents", len(d.Points), len(d.Documents))
	}
	if len(d.Points) == 0 {
		return nil
	}
	dims := len(d.Points[0])
	for i, row := range d.Points {
		if len(row) != dims {
			return fmt.Errorf("ragged point matrix: row %d has %d columns, want %d", i, len(row), dims)
		}
	}
	return nil
}

type options struct {
	codec      codec.Codec
	compressor Compressor
	controller *resource.Controller
}

// Option configures Save and Load.
type Option func(*options)

// WithCodec sets the document codec. Defaults to codec.Default.
// Load only uses this as a fallback for pre-versioned blobs; normally
// the snapshot header names the codec.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompressor sets the section compressor for Save. Defaults to zstd.
func WithCompressor(c Compressor) Option {
	return func(o *options) {
		o.compressor = c
	}
}

// WithController gates snapshot IO and memory through a resource
// controller. Nil (the default) means unlimited.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:      codec.Default,
		compressor: Zstd{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Save writes the dataset to the store under name as a single snapshot
// blob. The write is atomic at the store level: readers see either the
// previous snapshot or the new one.
func Save(ctx context.Context, store blobstore.BlobStore, name string, ds *Dataset, optFns ...Option) error {
	o := applyOptions(optFns)

	if err := ds.Validate(); err != nil {
		return err
	}

	rows := len(ds.Points)
	dims := 0
	if rows > 0 {
		dims = len(ds.Points[0])
	}

	pointsRaw := encodePoints(ds.Points, dims)
	pointsSec, err := o.compressor.Compress(pointsRaw)
	if err != nil {
		return fmt.Errorf("compress points: %w", err)
	}

	docsRaw, err := o.codec.Marshal(ds.Documents)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	docsSec, err := o.compressor.Compress(docsRaw)
	if err != nil {
		return fmt.Errorf("compress documents: %w", err)
	}

	hdr := encodeHeader(o.codec.Name(), o.compressor.Name(), rows, dims, len(pointsSec), len(docsSec))

	var out bytes.Buffer
	out.Grow(len(hdr) + len(pointsSec) + len(docsSec))
	w := resource.NewLimitedWriter(ctx, &out, o.controller)
	for _, sec := range [][]byte{hdr, pointsSec, docsSec} {
		if _, err := w.Write(sec); err != nil {
			return err
		}
	}

	return store.Put(ctx, name, out.Bytes())
}

// Load reads a snapshot blob from the store and decodes it.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Dataset, error) {
	o := applyOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	size := blob.Size()
	if err := o.controller.AcquireMemory(ctx, size); err != nil {
		return nil, err
	}
	defer o.controller.ReleaseMemory(size)

	// Zero-copy blob access only applies without a controller; throttled
	// loads stream through a rate-limited reader instead.
	var buf []byte
	if o.controller == nil {
		buf, err = blobstore.ReadAll(ctx, blob)
		if err != nil {
			return nil, err
		}
	} else {
		buf = make([]byte, size)
		r := resource.NewLimitedReader(ctx, blobstore.NewReader(ctx, blob), o.controller)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
	}

	hdr, body, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}

	comp, ok := CompressorByName(hdr.compressor)
	if !ok {
		return nil, fmt.Errorf("%w: unknown compressor %q", ErrBadSnapshot, hdr.compressor)
	}
	cdc, ok := codec.ByName(hdr.codec)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrBadSnapshot, hdr.codec)
	}

	if uint64(len(body)) != hdr.pointsLen+hdr.docsLen {
		return nil, fmt.Errorf("%w: truncated sections", ErrBadSnapshot)
	}

	pointsRaw, err := comp.Decompress(body[:hdr.pointsLen])
	if err != nil {
		return nil, fmt.Errorf("decompress points: %w", err)
	}
	points, err := decodePoints(pointsRaw, int(hdr.rows), int(hdr.dims))
	if err != nil {
		return nil, err
	}

	docsRaw, err := comp.Decompress(body[hdr.pointsLen : hdr.pointsLen+hdr.docsLen])
	if err != nil {
		return nil, fmt.Errorf("decompress documents: %w", err)
	}

	var docs []document.Document
	if err := cdc.Unmarshal(docsRaw, &docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	if len(docs) != int(hdr.rows) {
		return nil, fmt.Errorf("%w: %d documents for %d rows", ErrBadSnapshot, len(docs), hdr.rows)
	}

	return &Dataset{Points: points, Documents: docs}, nil
}

type header struct {
	codec      string
	compressor string
	rows       uint32
	dims       uint32
	pointsLen  uint64
	docsLen    uint64
}

func encodeHeader(codecName, compName string, rows, dims, pointsLen, docsLen int) []byte {
	buf := make([]byte, 0, 4+1+1+len(codecName)+1+len(compName)+4+4+8+8)
	buf = append(buf, magic[:]...)
	buf = append(buf, formatVersion)
	buf = append(buf, uint8(len(codecName)))
	buf = append(buf, codecName...)
	buf = append(buf, uint8(len(compName)))
	buf = append(buf, compName...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(rows))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dims))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(pointsLen))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(docsLen))
	return buf
}

func decodeHeader(buf []byte) (header, []byte, error) {
	var h header

	if len(buf) < 5 || [4]byte(buf[:4]) != magic {
		return h, nil, fmt.Errorf("%w: bad magic", ErrBadSnapshot)
	}
	if buf[4] != formatVersion {
		return h, nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, buf[4])
	}
	rest := buf[5:]

	var err error
	h.codec, rest, err = takeString(rest)
	if err != nil {
		return h, nil, err
	}
	h.compressor, rest, err = takeString(rest)
	if err != nil {
		return h, nil, err
	}

	if len(rest) < 4+4+8+8 {
		return h, nil, fmt.Errorf("%w: truncated header", ErrBadSnapshot)
	}
	h.rows = binary.LittleEndian.Uint32(rest[0:4])
	h.dims = binary.LittleEndian.Uint32(rest[4:8])
	h.pointsLen = binary.LittleEndian.Uint64(rest[8:16])
	h.docsLen = binary.LittleEndian.Uint64(rest[16:24])

	return h, rest[24:], nil
}

func takeString(buf []byte) (string, []byte, error) {
	if len(buf) < 1 {
		return "", nil, fmt.Errorf("%w: truncated header", ErrBadSnapshot)
	}
	n := int(buf[0])
	if len(buf) < 1+n {
		return "", nil, fmt.Errorf("%w: truncated header", ErrBadSnapshot)
	}
	return string(buf[1 : 1+n]), buf[1+n:], nil
}

func encodePoints(points [][]float32, dims int) []byte {
	buf := make([]byte, 0, len(points)*dims*4)
	for _, row := range points {
		for _, v := range row {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	return buf
}

func decodePoints(buf []byte, rows, dims int) ([][]float32, error) {
	if len(buf) != rows*dims*4 {
		return nil, fmt.Errorf("%w: points section has %d bytes, want %d", ErrBadSnapshot, len(buf), rows*dims*4)
	}
	points := make([][]float32, rows)
	off := 0
	for i := range points {
		row := make([]float32, dims)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
			off += 4
		}
		points[i] = row
	}
	return points, nil
}
