// Package blobstore provides storage abstraction for persisted
// dataset snapshots.
//
// BlobStore is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with memory-mapped reads
//   - MemoryStore: in-memory store for tests
//   - s3.Store: Amazon S3 (plus a DynamoDB-backed dataset catalog)
//   - minio.Store: MinIO and other S3-compatible object stores
//
// Cloud blobs support ranged ReadAt so partial reads avoid full
// downloads; ReadAll uses zero-copy access where a blob supports it.
package blobstore
