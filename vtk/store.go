package vtk

import (
	"bytes"
	"context"

	"github.com/hupe1980/sulcigo/blobstore"
)

// ReadStored parses a polydata blob from a blob store.
func ReadStored(ctx context.Context, store blobstore.Store, name string) (*PolyData, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Read(rc)
}

// WriteStored serializes the polydata into a blob store.
func WriteStored(ctx context.Context, store blobstore.Store, name string, pd *PolyData) error {
	var buf bytes.Buffer

	if err := Write(&buf, pd); err != nil {
		return err
	}

	return store.Put(ctx, name, buf.Bytes())
}
