// Package blobstore is the storage abstraction for archived tables.
//
// A BlobStore holds immutable, named blobs. ffdb uses it to keep committed
// record files off the local disk and to search them later.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local file system, mmap-backed reads
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
// Implement BlobStore and Blob. Blob.ReadRange should stream from the
// backend rather than buffer the range, since archive searches read whole
// blobs front to back.
package blobstore
