package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreLifecycle exercises the BlobStore contract against an
// implementation.
func testStoreLifecycle(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	// Missing blob
	_, err := store.Open(ctx, "missing.bin")
	require.ErrorIs(t, err, ErrNotFound)

	// Put and read back
	data := []byte("hello world, this is a snapshot blob")
	require.NoError(t, store.Put(ctx, "data-001.bin", data))

	blob, err := store.Open(ctx, "data-001.bin")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf))

	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	require.NoError(t, blob.Close())

	// Overwrite replaces content
	require.NoError(t, store.Put(ctx, "data-001.bin", []byte("v2")))
	blob, err = store.Open(ctx, "data-001.bin")
	require.NoError(t, err)
	got, err = ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
	require.NoError(t, blob.Close())

	// List with prefix
	require.NoError(t, store.Put(ctx, "data-002.bin", []byte("x")))
	require.NoError(t, store.Put(ctx, "other.bin", []byte("y")))

	names, err := store.List(ctx, "data-")
	require.NoError(t, err)
	assert.Equal(t, []string{"data-001.bin", "data-002.bin"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"data-001.bin", "data-002.bin", "other.bin"}, names)

	// Delete is idempotent
	require.NoError(t, store.Delete(ctx, "data-001.bin"))
	require.NoError(t, store.Delete(ctx, "data-001.bin"))

	_, err = store.Open(ctx, "data-001.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreLifecycle(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStoreLifecycle(t, store)
}

func TestMemoryStoreLifecycle(t *testing.T) {
	testStoreLifecycle(t, NewMemoryStore())
}

func TestLocalStoreNestedNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "snapshots/2026/demo.snap", []byte("nested")))

	names, err := store.List(ctx, "snapshots/")
	require.NoError(t, err)
	assert.Equal(t, []string{"snapshots/2026/demo.snap"}, names)

	blob, err := store.Open(ctx, "snapshots/2026/demo.snap")
	require.NoError(t, err)
	defer blob.Close()

	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("nested"), got)
}

func TestNewReaderSequential(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("sequential blob reader content")
	require.NoError(t, store.Put(ctx, "r", data))

	blob, err := store.Open(ctx, "r")
	require.NoError(t, err)
	defer blob.Close()

	// Small reads walk the blob front to back and terminate with EOF.
	r := NewReader(ctx, blob)
	buf := make([]byte, 7)
	var got []byte
	for {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, data, got)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("original")
	require.NoError(t, store.Put(ctx, "b", data))

	// Mutating the caller's slice must not affect the stored blob.
	data[0] = 'X'

	blob, err := store.Open(ctx, "b")
	require.NoError(t, err)
	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}
