package providers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMetrics counts calls so middleware and cache behavior can be
// asserted without a registry.
type recordingMetrics struct {
	mu           sync.Mutex
	requests     map[string]int
	durations    int
	cacheHits    int
	cacheMisses  int
	runs         int
	runObs       int
	snapshotObs  int
	graphNodes   int
	graphEdges   int
	lastEndpoint string
	lastStatus   int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{requests: make(map[string]int)}
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[endpoint]++
	m.lastEndpoint = endpoint
	m.lastStatus = status
}

func (m *recordingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

func (m *recordingMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *recordingMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *recordingMetrics) IncRunsTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
}

func (m *recordingMetrics) ObserveRunDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runObs++
}

func (m *recordingMetrics) ObserveSnapshotDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotObs++
}

func (m *recordingMetrics) SetGraphSize(nodes, edges int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graphNodes = nodes
	m.graphEdges = edges
}

func TestMetricsMiddleware_RecordsStatusAndPath(t *testing.T) {
	metrics := newRecordingMetrics()
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graph", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "/graph", metrics.lastEndpoint)
	assert.Equal(t, http.StatusTeapot, metrics.lastStatus)
	assert.Equal(t, 1, metrics.requests["/graph"])
	assert.Equal(t, 1, metrics.durations)
}

func TestMetricsMiddleware_BareWriteRecords200(t *testing.T) {
	metrics := newRecordingMetrics()
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusOK, metrics.lastStatus)
}

func TestMetricsMiddleware_KeepsFirstStatusOnDoubleWriteHeader(t *testing.T) {
	metrics := newRecordingMetrics()
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/records", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.StatusCreated, metrics.lastStatus)
}
