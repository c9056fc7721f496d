package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollectorRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/api/projects", 200, 10*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/api/projects", 200, 20*time.Millisecond)
	c.RecordRequest(http.MethodPost, "/api/messages", 429, time.Millisecond)
	c.RecordRateLimited()

	body := scrape(t, reg)
	assert.Contains(t, body, `portfolio_http_requests_total{method="GET",route="/api/projects",status="200"} 2`)
	assert.Contains(t, body, `portfolio_http_requests_total{method="POST",route="/api/messages",status="429"} 1`)
	assert.Contains(t, body, `portfolio_http_request_duration_seconds_count{method="GET",route="/api/projects"} 2`)
	assert.Contains(t, body, "portfolio_contact_rate_limited_total 1")
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RegisterClientGauge(func() int { return 3 })
	c.RecordMessageReceived()

	body := scrape(t, reg)
	assert.Contains(t, body, "portfolio_contact_messages_total 1")
	assert.Contains(t, body, "portfolio_websocket_clients 3")
}
