// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("tables/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	err = archive.Upload(ctx, store, "cpu-2024-05.table", "./data/cpu")
//
// # Features
//
//   - Range reads, so archive searches stream objects instead of downloading them
//   - Multipart uploads for large record files
//   - CRC32C checksums on upload
//   - Automatic pagination for listing
package s3
