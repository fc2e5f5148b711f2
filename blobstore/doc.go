// Package blobstore abstracts storage of mesh and scalar archives.
//
// Implementations:
//   - LocalStore: local file system, atomic writes via rename.
//   - MemoryStore: in-memory, for testing.
//   - RateLimitedStore: wraps another Store with a read bandwidth cap.
//   - minio.Store: MinIO / S3-compatible object storage.
package blobstore
