// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package imaging calls the hosted image generation and editing models.
package imaging

import (
	"context"
	"errors"
	"slices"
	"time"

	"golang.org/x/time/rate"

	"github.com/go-a2a/design-studio/internal/metrics"
)

// DefaultAspectRatio replaces unsupported aspect ratios.
const DefaultAspectRatio = "1:1"

// PNG is the MIME type of images decoded from predictions.
const PNG = "image/png"

// GenerationAspectRatios are the aspect ratios accepted by [Generator].
var GenerationAspectRatios = []string{"1:1", "2:3", "3:2", "3:4", "4:3", "4:5", "5:4", "9:16", "16:9", "21:9"}

// BackgroundAspectRatios are the aspect ratios accepted by the background editors.
var BackgroundAspectRatios = []string{"1:1", "4:3", "3:4", "9:16", "16:9"}

// ErrNoImage is returned when a model response carries no image data.
var ErrNoImage = errors.New("API returned no image data")

// NormalizeAspectRatio returns ratio if allowed lists it, else [DefaultAspectRatio].
//
// ok reports whether ratio was kept.
func NormalizeAspectRatio(ratio string, allowed []string) (normalized string, ok bool) {
	if slices.Contains(allowed, ratio) {
		return ratio, true
	}
	return DefaultAspectRatio, false
}

// ClampCandidateCount returns n when it is in 1..4, else 1.
func ClampCandidateCount(n int) int {
	if n < 1 || n > 4 {
		return 1
	}
	return n
}

// ClampSampleCount returns n bounded to 1..4.
func ClampSampleCount(n int) int {
	switch {
	case n <= 0:
		return 1
	case n > 4:
		return 4
	default:
		return n
	}
}

// Image is a decoded image returned by a model.
type Image struct {
	// Index is the position of the image in the model response.
	Index    int
	Data     []byte
	MIMEType string
}

// NewLimiter returns a limiter allowing requestsPerMinute calls, or nil when requestsPerMinute is not positive.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// Option configures the image clients.
type Option func(*options)

type options struct {
	limiter *rate.Limiter
}

// WithLimiter paces every call through l. Clients may share one limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) wait(ctx context.Context) error {
	if o.limiter == nil {
		return nil
	}
	return o.limiter.Wait(ctx)
}

// observe runs call after pacing and records it under operation.
func observe[T any](ctx context.Context, o options, operation, model string, call func() (T, error)) (T, error) {
	if err := o.wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	start := time.Now()
	res, err := call()
	metrics.RecordImageAPICall(operation, model, time.Since(start), err)
	return res, err
}
