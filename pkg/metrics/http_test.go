package metrics

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	metrics := NewHTTPMetrics("ratewise-api")
	metrics.Observe("GET", "/api/v1/stores", 200, 120*time.Millisecond)
	metrics.Observe("GET", "/api/v1/stores", 200, 80*time.Millisecond)
	metrics.Observe("POST", "/api/v1/auth/login", 401, 15*time.Millisecond)

	mfs, err := metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "path", "/api/v1/stores"); err != nil {
		t.Fatalf("fetch stores counter: %v", err)
	} else if got != 2 {
		t.Fatalf("expected stores requests=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "status", "401"); err != nil {
		t.Fatalf("fetch login counter: %v", err)
	} else if got != 1 {
		t.Fatalf("expected login failures=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "path", "/api/v1/stores"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestHTTPMetricsInFlightGauge(t *testing.T) {
	metrics := NewHTTPMetrics("ratewise-api")
	metrics.TrackInFlight(1)
	metrics.TrackInFlight(1)
	metrics.TrackInFlight(-1)

	mfs, err := metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	mf := findMetricFamily(mfs, "http_requests_in_flight")
	if mf == nil {
		t.Fatal("expected in-flight gauge to be registered")
	}
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 1 {
		t.Fatalf("expected in-flight=1, got %f", got)
	}
}

func TestHTTPMetricsHandlerServesExposition(t *testing.T) {
	metrics := NewHTTPMetrics("ratewise-api")
	metrics.Observe("GET", "/health/live", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	metrics.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("expected exposition output to contain http_requests_total")
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var metrics *HTTPMetrics
	metrics.Observe("GET", "/", 200, time.Second)
	metrics.TrackInFlight(1)
	if metrics.Handler() == nil {
		t.Fatal("expected non-nil fallback handler")
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
