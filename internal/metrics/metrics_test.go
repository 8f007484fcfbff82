package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveSourceFetch("new", time.Second, 3, nil)
	m.ObserveRun(1)
	m.CacheError("read")
	m.ManualEntry("added")
	m.APIRequest("explore", nil)
}

func TestObserveSourceFetch(t *testing.T) {
	m := New()
	m.ObserveSourceFetch("new", 10*time.Millisecond, 4, nil)
	m.ObserveSourceFetch("valuable", 10*time.Millisecond, 0, errors.New("boom"))

	if got := testutil.ToFloat64(m.SourceFetches.WithLabelValues("new", "ok")); got != 1 {
		t.Fatalf("ok fetches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SourceFetches.WithLabelValues("valuable", "error")); got != 1 {
		t.Fatalf("error fetches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SourceRecords.WithLabelValues("new")); got != 4 {
		t.Fatalf("records = %v, want 4", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveRun(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "postmint_aggregate_runs_total 1") {
		t.Fatalf("runs counter missing from output:\n%s", body)
	}
}
