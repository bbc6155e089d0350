// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package metrics_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/go-a2a/design-studio/internal/metrics"
)

func TestRecordToolCall(t *testing.T) {
	before := testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("metrics_test_tool", metrics.StatusError))
	metrics.RecordToolCall("metrics_test_tool", 10*time.Millisecond, true)
	after := testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("metrics_test_tool", metrics.StatusError))
	if after-before != 1 {
		t.Fatalf("error counter moved by %v, want 1", after-before)
	}
}

func TestRecordModelCall(t *testing.T) {
	metrics.RecordModelCall("metrics_test_agent", "m", 3, 4, errors.New("boom"))
	if got := testutil.ToFloat64(metrics.ModelCalls.WithLabelValues("metrics_test_agent", "m", metrics.StatusError)); got != 1 {
		t.Fatalf("model error calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.ModelTokens.WithLabelValues("metrics_test_agent", "m", "output")); got != 4 {
		t.Fatalf("output tokens = %v, want 4", got)
	}
}

func TestHandler(t *testing.T) {
	metrics.Init()
	metrics.Init()
	metrics.RecordAssetOperation("search", nil)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "design_studio_asset_operations_total") {
		t.Fatalf("metrics output does not contain asset operations:\n%s", rec.Body.String())
	}
}
