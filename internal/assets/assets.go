// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package assets manages the product image assets kept in Cloud Storage.
//
// Two buckets are involved: the SKU data bucket holds the high resolution
// reference images and the product catalogue, and the agent outputs bucket
// receives published images. Either may be left unconfigured, in which case
// operations needing it fail with [ErrNotConfigured].
package assets

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-json-experiment/json"

	"github.com/go-a2a/design-studio/internal/fuzzy"
	"github.com/go-a2a/design-studio/internal/imageutil"
	"github.com/go-a2a/design-studio/internal/metrics"
	"github.com/go-a2a/design-studio/pkg/logging"
)

var (
	// ErrNotConfigured is returned when the bucket an operation needs has no name.
	ErrNotConfigured = errors.New("bucket not configured")

	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrTooLarge is returned when an object exceeds the configured size limit.
	ErrTooLarge = errors.New("object too large")
)

// Signed URL lifetimes.
const (
	PublishURLExpiry      = 120 * time.Minute
	PublishUnderURLExpiry = 30 * time.Minute
)

// SearchThreshold is the minimum token set ratio a filename must exceed to match.
const SearchThreshold = 80

// SKUNotFound is reported for SKU names without a catalogue entry.
const SKUNotFound = "SKU not found."

// publishExtensions are the file extensions kept by [Store.Publish].
var publishExtensions = []string{"png", "jpeg", "jpg"}

// Bucket is the object storage the [Store] reads and writes.
type Bucket interface {
	// Name returns the bucket name.
	Name() string

	// List returns the names of the objects under prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Read returns the content and content type of the object.
	//
	// A missing object returns [ErrNotFound]; objects larger than limit
	// return [ErrTooLarge] without being read. A limit <= 0 means no limit.
	Read(ctx context.Context, name string, limit int64) ([]byte, string, error)

	// Write stores data under name.
	Write(ctx context.Context, name string, data []byte, contentType string) error

	// SignedURL returns a V4 signed GET URL for name valid for expiry.
	SignedURL(name string, expiry time.Duration) (string, error)
}

// Config configures a [Store].
type Config struct {
	// SKUData holds the reference images and the product catalogue.
	SKUData Bucket

	// Outputs receives published images.
	Outputs Bucket

	// ImagePrefix is the folder of the reference images in SKUData.
	ImagePrefix string

	// SKUFilePath is the product catalogue object in SKUData.
	SKUFilePath string

	// MaxImageSize limits the size of fetched images. Zero means no limit.
	MaxImageSize int64
}

// Store searches, fetches and publishes product images.
type Store struct {
	skuData      Bucket
	outputs      Bucket
	imagePrefix  string
	skuFilePath  string
	maxImageSize int64

	now func() time.Time
}

// New returns a [Store] using the buckets of cfg.
func New(cfg Config) *Store {
	return &Store{
		skuData:      cfg.SKUData,
		outputs:      cfg.Outputs,
		imagePrefix:  strings.Trim(cfg.ImagePrefix, "/"),
		skuFilePath:  cfg.SKUFilePath,
		maxImageSize: cfg.MaxImageSize,
		now:          time.Now,
	}
}

func (s *Store) skuBucket() (Bucket, error) {
	if s.skuData == nil {
		return nil, fmt.Errorf("GCS_BUCKET_SKU_DATA: %w", ErrNotConfigured)
	}
	return s.skuData, nil
}

func (s *Store) outputBucket() (Bucket, error) {
	if s.outputs == nil {
		return nil, fmt.Errorf("GCS_BUCKET_AGENT_OUTPUTS: %w", ErrNotConfigured)
	}
	return s.outputs, nil
}

func (s *Store) imagePath(name string) string {
	if s.imagePrefix == "" {
		return name
	}
	return s.imagePrefix + "/" + name
}

// Search returns the base names of the reference images matching query, best match first.
func (s *Store) Search(ctx context.Context, query string) (matches []string, err error) {
	defer func() { metrics.RecordAssetOperation("search", err) }()

	bucket, err := s.skuBucket()
	if err != nil {
		return nil, err
	}

	names, err := bucket.List(ctx, s.imagePrefix)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	candidates := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			continue
		}
		candidates = append(candidates, name)
	}

	// Scores cover the whole object name, prefix included.
	results := fuzzy.Search(query, candidates, SearchThreshold)
	matches = make([]string, 0, len(results))
	for _, m := range results {
		matches = append(matches, path.Base(m.Value))
	}

	logging.FromContext(ctx).DebugContext(ctx, "searched reference images",
		slog.String("query", query),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(matches)),
	)
	return matches, nil
}

// Fetch returns the reference image called name and its content type.
func (s *Store) Fetch(ctx context.Context, name string) (data []byte, contentType string, err error) {
	defer func() { metrics.RecordAssetOperation("fetch", err) }()

	bucket, err := s.skuBucket()
	if err != nil {
		return nil, "", err
	}

	data, contentType, err = bucket.Read(ctx, s.imagePath(name), s.maxImageSize)
	if err != nil {
		return nil, "", fmt.Errorf("read image %s: %w", name, err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "fetched reference image",
		slog.String("name", name),
		slog.String("size", humanize.Bytes(uint64(len(data)))),
	)
	return data, contentType, nil
}

// Published is an image written to the outputs bucket.
type Published struct {
	Filename  string
	SignedURL string
}

// Publish writes data to the outputs bucket under a timestamp name and signs it for [PublishURLExpiry].
func (s *Store) Publish(ctx context.Context, data []byte, mimeType string) (*Published, error) {
	ext := imageutil.ExtensionFromMIME(mimeType, publishExtensions...)
	return s.publish(ctx, imageutil.TimestampName(s.now(), ext), data, mimeType, PublishURLExpiry)
}

// PublishUnder writes data as a PNG under folder and signs it for [PublishUnderURLExpiry].
func (s *Store) PublishUnder(ctx context.Context, folder string, data []byte) (*Published, error) {
	h := fnv.New32a()
	h.Write(data)
	name := fmt.Sprintf("%s/%s-%d.png", strings.Trim(folder, "/"), s.now().UTC().Format("20060102-150405"), h.Sum32()%1000)
	return s.publish(ctx, name, data, "image/png", PublishUnderURLExpiry)
}

func (s *Store) publish(ctx context.Context, name string, data []byte, mimeType string, expiry time.Duration) (_ *Published, err error) {
	defer func() { metrics.RecordAssetOperation("publish", err) }()

	bucket, err := s.outputBucket()
	if err != nil {
		return nil, err
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	if err := bucket.Write(ctx, name, data, mimeType); err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	url, err := bucket.SignedURL(name, expiry)
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", name, err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "published image",
		slog.String("bucket", bucket.Name()),
		slog.String("name", name),
		slog.String("size", humanize.Bytes(uint64(len(data)))),
		slog.Duration("expiry", expiry),
	)
	return &Published{Filename: name, SignedURL: url}, nil
}

// SKUDetails returns the catalogue entries matching names.
//
// A name matches an entry when it is a case-insensitive substring of the
// entry key or of its "name" field. Names matching nothing map to [SKUNotFound].
func (s *Store) SKUDetails(ctx context.Context, names []string) (_ map[string]any, err error) {
	defer func() { metrics.RecordAssetOperation("fetch", err) }()

	bucket, err := s.skuBucket()
	if err != nil {
		return nil, err
	}

	data, _, err := bucket.Read(ctx, s.skuFilePath, 0)
	if err != nil {
		return nil, fmt.Errorf("read SKU data %s: %w", s.skuFilePath, err)
	}

	var catalogue map[string]map[string]any
	if err := json.Unmarshal(data, &catalogue); err != nil {
		return nil, fmt.Errorf("SKU data file is not valid JSON: %w", err)
	}

	details := make(map[string]any)
	for _, name := range names {
		needle := strings.ToLower(name)
		found := false
		for key, entry := range catalogue {
			entryName, _ := entry["name"].(string)
			if strings.Contains(strings.ToLower(key), needle) || strings.Contains(strings.ToLower(entryName), needle) {
				details[key] = entry
				found = true
			}
		}
		if !found {
			details[name] = SKUNotFound
		}
	}
	return details, nil
}

// ListReferenceImages returns the gs:// URIs of the reference images.
func (s *Store) ListReferenceImages(ctx context.Context) (_ []string, err error) {
	defer func() { metrics.RecordAssetOperation("search", err) }()

	bucket, err := s.skuBucket()
	if err != nil {
		return nil, err
	}

	names, err := bucket.List(ctx, s.imagePrefix)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	uris := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			continue
		}
		uris = append(uris, "gs://"+bucket.Name()+"/"+name)
	}
	return uris, nil
}
