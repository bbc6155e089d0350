// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics holds the Prometheus collectors of the design studio.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// Tool metrics
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "design_studio_tool_calls_total",
			Help: "Total number of tool calls",
		},
		[]string{"tool", "status"}, // status: success|error
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "design_studio_tool_duration_seconds",
			Help:    "Tool call duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"tool"},
	)

	// Model metrics
	ModelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "design_studio_model_calls_total",
			Help: "Total number of LLM calls",
		},
		[]string{"agent", "model", "status"},
	)

	ModelTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "design_studio_model_tokens_total",
			Help: "Total tokens used by agents",
		},
		[]string{"agent", "model", "type"}, // type: input|output
	)

	// Image API metrics
	ImageAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "design_studio_image_api_calls_total",
			Help: "Total number of image generation and editing API calls",
		},
		[]string{"operation", "model", "status"},
	)

	ImageAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "design_studio_image_api_latency_seconds",
			Help:    "Image API latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"operation", "model"},
	)

	// Storage metrics
	AssetOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "design_studio_asset_operations_total",
			Help: "Total number of asset bucket operations",
		},
		[]string{"operation", "status"}, // operation: search|fetch|publish
	)
)

var initOnce sync.Once

// Init registers every collector with the default registry. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(ToolCalls)
		prometheus.MustRegister(ToolDuration)
		prometheus.MustRegister(ModelCalls)
		prometheus.MustRegister(ModelTokens)
		prometheus.MustRegister(ImageAPICalls)
		prometheus.MustRegister(ImageAPILatency)
		prometheus.MustRegister(AssetOperations)
	})
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// RecordToolCall records a tool call. failed marks calls that returned an error-status result.
func RecordToolCall(tool string, latency time.Duration, failed bool) {
	st := StatusSuccess
	if failed {
		st = StatusError
	}
	ToolCalls.WithLabelValues(tool, st).Inc()
	ToolDuration.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordModelCall records an LLM call and its token usage.
func RecordModelCall(agent, model string, inputTokens, outputTokens int32, err error) {
	ModelCalls.WithLabelValues(agent, model, status(err)).Inc()
	if inputTokens > 0 {
		ModelTokens.WithLabelValues(agent, model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		ModelTokens.WithLabelValues(agent, model, "output").Add(float64(outputTokens))
	}
}

// RecordImageAPICall records a call to an image generation or editing API.
func RecordImageAPICall(operation, model string, latency time.Duration, err error) {
	ImageAPICalls.WithLabelValues(operation, model, status(err)).Inc()
	ImageAPILatency.WithLabelValues(operation, model).Observe(latency.Seconds())
}

// RecordAssetOperation records an asset bucket operation.
func RecordAssetOperation(operation string, err error) {
	AssetOperations.WithLabelValues(operation, status(err)).Inc()
}
