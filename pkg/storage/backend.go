// Package storage persists history documents and exported models to a
// local directory or an S3 bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("storage: key not found")

// BlobStore is a flat key/value store for serialized documents.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// Open returns the store addressed by location: "s3://bucket/prefix" or a
// local directory path.
func Open(ctx context.Context, location string) (BlobStore, error) {
	if !strings.HasPrefix(location, "s3://") {
		return NewLocalStore(location), nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid s3 url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid s3 url %q: missing bucket", location)
	}
	return NewS3StoreFromEnv(ctx, u.Host, strings.Trim(u.Path, "/"))
}
