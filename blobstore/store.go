package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing mesh and scalar archives by
// name. Surface meshes are read front to back, so blobs are exposed as
// sequential streams.
type Store interface {
	// Open opens a blob for reading. The caller closes the returned
	// reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Put writes a blob atomically, replacing any existing content.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
