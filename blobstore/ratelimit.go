package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// RateLimitedStore wraps a Store and throttles read bandwidth with a
// token bucket, one token per byte. Useful when large mesh archives are
// pulled from shared remote storage.
type RateLimitedStore struct {
	inner   Store
	limiter *rate.Limiter
}

// NewRateLimitedStore creates a bandwidth-limited view of inner.
func NewRateLimitedStore(inner Store, limiter *rate.Limiter) *RateLimitedStore {
	return &RateLimitedStore{inner: inner, limiter: limiter}
}

// Open opens a blob whose reads wait on the bandwidth budget.
func (s *RateLimitedStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	return &limitedReader{ctx: ctx, rc: rc, limiter: s.limiter}, nil
}

// Put writes a blob atomically.
func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	return s.inner.Put(ctx, name, data)
}

// Delete removes a blob.
func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns the blob names with the given prefix, sorted.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type limitedReader struct {
	ctx     context.Context
	rc      io.ReadCloser
	limiter *rate.Limiter
}

func (r *limitedReader) Read(p []byte) (int, error) {
	// Keep each wait below the limiter burst.
	if burst := r.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}

	n, err := r.rc.Read(p)
	if n > 0 {
		if werr := r.limiter.WaitN(r.ctx, n); werr != nil {
			return n, werr
		}
	}

	return n, err
}

func (r *limitedReader) Close() error {
	return r.rc.Close()
}
