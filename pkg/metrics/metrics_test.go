package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncFileResult(OutcomeSuccess)
	pr.IncFileResult(OutcomeSuccess)
	pr.IncFileResult(OutcomeFailed)
	pr.ObserveRunDuration("all", 150*time.Millisecond)
	pr.IncIndexBuild(OutcomeSuccess)
	pr.IncCacheLookup(true)
	pr.IncCacheLookup(false)
	pr.IncWatchEvent()

	assert.Equal(t, 2.0, counterValue(t, pr.fileResults.WithLabelValues("success")))
	assert.Equal(t, 1.0, counterValue(t, pr.fileResults.WithLabelValues("failed")))
	assert.Equal(t, 1.0, counterValue(t, pr.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, counterValue(t, pr.watchEvents))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 5)
}

func counterValue(t *testing.T, c prom.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNilPrometheusRecorder(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncFileResult(OutcomeSuccess)
		pr.ObserveRunDuration("all", time.Second)
		pr.IncIndexBuild(OutcomeFailed)
		pr.IncCacheLookup(true)
		pr.IncWatchEvent()
	})
}

func TestHTTPHandler(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncIndexBuild(OutcomeSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(pr.Registry()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "compdoc_index_builds_total")
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, OutcomeOf(nil))
	assert.Equal(t, OutcomeFailed, OutcomeOf(errors.New("boom")))
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
