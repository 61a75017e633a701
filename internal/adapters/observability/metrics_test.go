package observability_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absa_dashboard/internal/adapters/observability"
	"absa_dashboard/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	assert.Contains(t, string(body), "absa_http_requests_total")
}

func TestObserveLoad(t *testing.T) {
	before := testutil.ToFloat64(observability.DatasetLoads.WithLabelValues("test-src", "missing_column"))

	observability.ObserveLoad("test-src", 42, nil, time.Millisecond)
	observability.ObserveLoad("test-src", 0, fmt.Errorf("wrap: %w", domain.ErrMissingColumn), time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(observability.DatasetLoads.WithLabelValues("test-src", "missing_column")))
	assert.Equal(t, 42.0, testutil.ToFloat64(observability.DatasetRows.WithLabelValues("test-src")))
}

func TestLabelErr(t *testing.T) {
	assert.Equal(t, "ok", observability.LabelErr(nil))
	assert.Equal(t, "load_failure", observability.LabelErr(fmt.Errorf("x: %w", domain.ErrLoadFailure)))
	assert.Equal(t, "no_text", observability.LabelErr(domain.ErrNoText))
	assert.Equal(t, "no_data", observability.LabelErr(domain.ErrNoData))
	assert.Equal(t, "error", observability.LabelErr(fmt.Errorf("boom")))
}
