package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/classes", http.StatusOK, 15*time.Millisecond)
	m.ObserveDBQuery("list_classes", 2*time.Millisecond)
	m.RecordInviteCodeCollision()
	m.RecordInviteCodeExhausted()
	m.RecordRateLimited()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/classes",status="200"} 1`)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="list_classes"} 1`)
	assert.Contains(t, body, "class_invite_code_collisions_total 1")
	assert.Contains(t, body, "class_invite_code_exhausted_total 1")
	assert.Contains(t, body, "http_rate_limited_total 1")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveDBQuery("noop", time.Millisecond)
	m.RecordInviteCodeCollision()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
