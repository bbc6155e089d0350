// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/types"
)

// GCSService represents an artifact service implementation using Google Cloud Storage (GCS).
type GCSService struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

var _ types.ArtifactService = (*GCSService)(nil)

// NewGCSService creates a new [GCSService] instance with the given bucket name.
func NewGCSService(ctx context.Context, bucketName string) (*GCSService, error) {
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

	return NewGCSServiceWithClient(client, bucketName), nil
}

// NewGCSServiceWithClient returns a [GCSService] that uses an existing client.
//
// The service owns client and closes it in [GCSService.Close].
func NewGCSServiceWithClient(client *storage.Client, bucketName string) *GCSService {
	return &GCSService{
		client: client,
		bucket: client.Bucket(bucketName),
	}
}

// artifactPrefix returns the object prefix holding all versions of filename.
func artifactPrefix(appName, userID, sessionID, filename string) string {
	if fileHasUserNamespace(filename) {
		return fmt.Sprintf("%s/%s/user/%s/", appName, userID, filename)
	}
	return fmt.Sprintf("%s/%s/%s/%s/", appName, userID, sessionID, filename)
}

// blobName constructs the blob name in GCS.
func blobName(appName, userID, sessionID, filename string, version int) string {
	return artifactPrefix(appName, userID, sessionID, filename) + strconv.Itoa(version)
}

// SaveArtifact implements [types.ArtifactService].
func (a *GCSService) SaveArtifact(ctx context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error) {
	if artifact == nil || artifact.InlineData == nil {
		return 0, fmt.Errorf("save artifact %q: part has no inline data", filename)
	}

	versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
	if err != nil {
		return 0, err
	}
	version := 0
	if len(versions) > 0 {
		version = versions[len(versions)-1] + 1
	}

	w := a.bucket.Object(blobName(appName, userID, sessionID, filename, version)).NewWriter(ctx)
	w.ContentType = artifact.InlineData.MIMEType
	if _, err := w.Write(artifact.InlineData.Data); err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("write artifact %q: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("write artifact %q: %w", filename, err)
	}

	return version, nil
}

// LoadArtifact implements [types.ArtifactService].
func (a *GCSService) LoadArtifact(ctx context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error) {
	if version == types.LatestVersion {
		versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, nil
		}
		version = versions[len(versions)-1]
	}
	if version < 0 {
		return nil, nil
	}

	r, err := a.bucket.Object(blobName(appName, userID, sessionID, filename, version)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read artifact %q: %w", filename, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact %q: %w", filename, err)
	}

	return genai.NewPartFromBytes(data, r.Attrs.ContentType), nil
}

// ListArtifactKey implements [types.ArtifactService].
//
// The session and user namespaces are listed concurrently.
func (a *GCSService) ListArtifactKey(ctx context.Context, appName, userID, sessionID string) ([]string, error) {
	var (
		mu        sync.Mutex
		filenames []string
	)
	collect := func(ctx context.Context, prefix string) error {
		it := a.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
		for {
			attrs, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("list %s: %w", prefix, err)
			}
			// {app}/{user}/{session}/{filename}/{version}
			if parts := strings.Split(attrs.Name, "/"); len(parts) == 5 {
				mu.Lock()
				filenames = append(filenames, parts[3])
				mu.Unlock()
			}
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return collect(ctx, fmt.Sprintf("%s/%s/%s/", appName, userID, sessionID))
	})
	eg.Go(func() error {
		return collect(ctx, fmt.Sprintf("%s/%s/user/", appName, userID))
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(filenames)
	return slices.Compact(filenames), nil
}

// DeleteArtifact implements [types.ArtifactService].
func (a *GCSService) DeleteArtifact(ctx context.Context, appName, userID, sessionID, filename string) error {
	versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
	if err != nil {
		return err
	}

	for _, version := range versions {
		err := a.bucket.Object(blobName(appName, userID, sessionID, filename, version)).Delete(ctx)
		if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("delete artifact %q version %d: %w", filename, version, err)
		}
	}

	return nil
}

// ListVersions implements [types.ArtifactService].
func (a *GCSService) ListVersions(ctx context.Context, appName, userID, sessionID, filename string) ([]int, error) {
	it := a.bucket.Objects(ctx, &storage.Query{
		Prefix: artifactPrefix(appName, userID, sessionID, filename),
	})

	var versions []int
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list versions of %q: %w", filename, err)
		}

		version, ok := parseVersion(attrs.Name)
		if !ok {
			continue
		}
		versions = append(versions, version)
	}
	slices.Sort(versions)

	return versions, nil
}

// parseVersion returns the trailing version segment of an object name.
func parseVersion(name string) (int, bool) {
	idx := strings.LastIndex(name, "/")
	version, err := strconv.Atoi(name[idx+1:])
	if err != nil || version < 0 {
		return 0, false
	}
	return version, true
}

// Close implements [types.ArtifactService].
func (a *GCSService) Close() error {
	return a.client.Close()
}
