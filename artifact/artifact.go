// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/go-a2a/design-studio/types"
)

// userNamespace is the filename prefix of artifacts shared by every session of a user.
const userNamespace = "user:"

// fileHasUserNamespace checks if the filename has a user namespace.
func fileHasUserNamespace(filename string) bool {
	return strings.HasPrefix(filename, userNamespace)
}

// Backend names accepted by [New].
const (
	BackendMemory = "memory"
	BackendGCS    = "gcs"
	BackendRedis  = "redis"
)

// Config selects and configures an artifact backend.
type Config struct {
	// Backend is one of memory, gcs or redis.
	Backend string

	// GCSBucket is the bucket of the gcs backend.
	GCSBucket string

	// RedisURL is a redis:// URL for the redis backend.
	RedisURL string

	// RedisPrefix namespaces the redis keys.
	RedisPrefix string

	// TTL expires redis artifacts after the last write. Zero keeps them forever.
	TTL time.Duration
}

// New returns the [types.ArtifactService] selected by cfg.
func New(ctx context.Context, cfg Config) (types.ArtifactService, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewInMemoryService(), nil

	case BackendGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("gcs artifact backend requires a bucket name")
		}
		return NewGCSService(ctx, cfg.GCSBucket)

	case BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedisService(client, WithKeyPrefix(cfg.RedisPrefix), WithTTL(cfg.TTL)), nil

	default:
		return nil, fmt.Errorf("unknown artifact backend %q", cfg.Backend)
	}
}
