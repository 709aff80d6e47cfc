// Package s3 provides an Amazon S3 implementation of the
// blobstore.BlobStore interface, plus a DynamoDB-backed Catalog for
// tracking published dataset snapshot versions.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	)
//
//	ds, err := dataset.Load(ctx, store, "embeddings.snap")
//
// # Features
//
//   - Range reads for partial fetches of large snapshots
//   - Multipart uploads via the S3 transfer manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
