// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/types"
)

// DefaultRedisKeyPrefix is the key prefix used when none is configured.
const DefaultRedisKeyPrefix = "design_studio"

// RedisService is an artifact service storing each artifact as a Redis list of versions.
//
// Keys:
//
//	{prefix}:artifact:{app}:{user}:{session}:{filename}  list of encoded versions
//	{prefix}:files:{app}:{user}:{session}               set of filenames
//
// User-scoped filenames use the literal session "user".
type RedisService struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ types.ArtifactService = (*RedisService)(nil)

// RedisOption configures a [RedisService].
type RedisOption func(*RedisService)

// WithKeyPrefix sets the key prefix. An empty prefix keeps the default.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisService) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL expires the keys of an artifact ttl after its last write.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisService) {
		s.ttl = ttl
	}
}

// NewRedisService returns a [RedisService] backed by client.
//
// The service owns client and closes it in [RedisService.Close].
func NewRedisService(client redis.UniversalClient, opts ...RedisOption) *RedisService {
	s := &RedisService{
		client: client,
		prefix: DefaultRedisKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// record is the stored form of an artifact version.
type record struct {
	MIMEType    string `json:"mime_type,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Data        []byte `json:"data,omitempty"`
	Text        string `json:"text,omitempty"`
}

func (s *RedisService) scope(sessionID, filename string) string {
	if fileHasUserNamespace(filename) {
		return "user"
	}
	return sessionID
}

func (s *RedisService) artifactKey(appName, userID, sessionID, filename string) string {
	return fmt.Sprintf("%s:artifact:%s:%s:%s:%s", s.prefix, appName, userID, s.scope(sessionID, filename), filename)
}

func (s *RedisService) filesKey(appName, userID, scope string) string {
	return fmt.Sprintf("%s:files:%s:%s:%s", s.prefix, appName, userID, scope)
}

// SaveArtifact implements [types.ArtifactService].
func (s *RedisService) SaveArtifact(ctx context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error) {
	if artifact == nil {
		return 0, fmt.Errorf("save artifact %q: nil part", filename)
	}
	rec := record{Text: artifact.Text}
	if blob := artifact.InlineData; blob != nil {
		rec.MIMEType = blob.MIMEType
		rec.DisplayName = blob.DisplayName
		rec.Data = blob.Data
	}
	payload, err := sonic.ConfigStd.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("encode artifact %q: %w", filename, err)
	}

	key := s.artifactKey(appName, userID, sessionID, filename)
	filesKey := s.filesKey(appName, userID, s.scope(sessionID, filename))

	var length *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		length = pipe.RPush(ctx, key, payload)
		pipe.SAdd(ctx, filesKey, filename)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
			pipe.Expire(ctx, filesKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save artifact %q: %w", filename, err)
	}

	return int(length.Val()) - 1, nil
}

// LoadArtifact implements [types.ArtifactService].
func (s *RedisService) LoadArtifact(ctx context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error) {
	if version < types.LatestVersion {
		return nil, nil
	}

	key := s.artifactKey(appName, userID, sessionID, filename)
	payload, err := s.client.LIndex(ctx, key, int64(version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, s.forgetExpired(ctx, appName, userID, sessionID, filename)
		}
		return nil, fmt.Errorf("load artifact %q: %w", filename, err)
	}

	var rec record
	if err := sonic.ConfigStd.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode artifact %q: %w", filename, err)
	}
	if rec.Data == nil && rec.MIMEType == "" {
		return genai.NewPartFromText(rec.Text), nil
	}

	return &genai.Part{
		InlineData: &genai.Blob{
			Data:        rec.Data,
			DisplayName: rec.DisplayName,
			MIMEType:    rec.MIMEType,
		},
	}, nil
}

// ListArtifactKey implements [types.ArtifactService].
func (s *RedisService) ListArtifactKey(ctx context.Context, appName, userID, sessionID string) ([]string, error) {
	filenames, err := s.client.SUnion(ctx,
		s.filesKey(appName, userID, sessionID),
		s.filesKey(appName, userID, "user"),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	if len(filenames) == 0 {
		return filenames, nil
	}

	// The files set can outlive the version lists of older files under a TTL.
	exists := make([]*redis.IntCmd, len(filenames))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, name := range filenames {
			exists[i] = pipe.Exists(ctx, s.artifactKey(appName, userID, sessionID, name))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	live := filenames[:0]
	var stale []string
	for i, name := range filenames {
		if exists[i].Val() == 0 {
			stale = append(stale, name)
			continue
		}
		live = append(live, name)
	}
	if len(stale) > 0 {
		_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, name := range stale {
				pipe.SRem(ctx, s.filesKey(appName, userID, s.scope(sessionID, name)), name)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("prune expired artifacts: %w", err)
		}
	}
	slices.Sort(live)

	return live, nil
}

// forgetExpired drops filename from its files set once its version list is gone.
func (s *RedisService) forgetExpired(ctx context.Context, appName, userID, sessionID, filename string) error {
	n, err := s.client.Exists(ctx, s.artifactKey(appName, userID, sessionID, filename)).Result()
	if err != nil {
		return fmt.Errorf("check artifact %q: %w", filename, err)
	}
	if n > 0 {
		return nil
	}
	if err := s.client.SRem(ctx, s.filesKey(appName, userID, s.scope(sessionID, filename)), filename).Err(); err != nil {
		return fmt.Errorf("prune artifact %q: %w", filename, err)
	}
	return nil
}

// DeleteArtifact implements [types.ArtifactService].
func (s *RedisService) DeleteArtifact(ctx context.Context, appName, userID, sessionID, filename string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.artifactKey(appName, userID, sessionID, filename))
		pipe.SRem(ctx, s.filesKey(appName, userID, s.scope(sessionID, filename)), filename)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete artifact %q: %w", filename, err)
	}
	return nil
}

// ListVersions implements [types.ArtifactService].
func (s *RedisService) ListVersions(ctx context.Context, appName, userID, sessionID, filename string) ([]int, error) {
	n, err := s.client.LLen(ctx, s.artifactKey(appName, userID, sessionID, filename)).Result()
	if err != nil {
		return nil, fmt.Errorf("list versions of %q: %w", filename, err)
	}
	if n == 0 {
		return nil, s.forgetExpired(ctx, appName, userID, sessionID, filename)
	}

	versions := make([]int, n)
	for i := range versions {
		versions[i] = i
	}
	return versions, nil
}

// Close implements [types.ArtifactService].
func (s *RedisService) Close() error {
	return s.client.Close()
}
