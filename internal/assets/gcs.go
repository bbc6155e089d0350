// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSBucket is a [Bucket] backed by Google Cloud Storage.
type GCSBucket struct {
	name   string
	handle *storage.BucketHandle
}

var _ Bucket = (*GCSBucket)(nil)

// NewGCSBucket returns the bucket called name of client.
func NewGCSBucket(client *storage.Client, name string) *GCSBucket {
	return &GCSBucket{
		name:   name,
		handle: client.Bucket(name),
	}
}

// NewStorageClient returns a storage client authenticated with the application default credentials.
func NewStorageClient(ctx context.Context) (*storage.Client, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{
			storage.ScopeReadWrite,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get credentials for storage: %w", err)
	}

	client, err := storage.NewClient(ctx, option.WithAuthCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return client, nil
}

// NewGCSStore returns a [Store] over the named buckets of client. Empty names leave the bucket unconfigured.
func NewGCSStore(client *storage.Client, skuBucket, outputBucket string, cfg Config) *Store {
	if skuBucket != "" {
		cfg.SKUData = NewGCSBucket(client, skuBucket)
	}
	if outputBucket != "" {
		cfg.Outputs = NewGCSBucket(client, outputBucket)
	}
	return New(cfg)
}

// Name implements [Bucket].
func (b *GCSBucket) Name() string {
	return b.name
}

// List implements [Bucket].
func (b *GCSBucket) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	it := b.handle.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Read implements [Bucket].
func (b *GCSBucket) Read(ctx context.Context, name string, limit int64) ([]byte, string, error) {
	r, err := b.handle.Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	defer r.Close()

	if limit > 0 && r.Attrs.Size > limit {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrTooLarge, r.Attrs.Size)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	return data, r.Attrs.ContentType, nil
}

// Write implements [Bucket].
func (b *GCSBucket) Write(ctx context.Context, name string, data []byte, contentType string) error {
	w := b.handle.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// SignedURL implements [Bucket].
func (b *GCSBucket) SignedURL(name string, expiry time.Duration) (string, error) {
	return b.handle.SignedURL(name, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(expiry),
	})
}
