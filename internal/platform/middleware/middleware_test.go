package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gimm/internal/platform/metrics"
	"gimm/internal/platform/ratelimit"
	"gimm/pkg/requestcontext"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDAssignsAndEchoes(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-42", seen)
	assert.Equal(t, "upstream-42", rec.Header().Get(RequestIDHeader))
}

func TestLatencyRecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Get("/individual/{id}", ok)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/individual/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	labels := map[string]string{}
	for _, mf := range families {
		if mf.GetName() != "gimm_http_request_duration_seconds" {
			continue
		}
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
	}
	assert.Equal(t, "/individual/{id}", labels["route"])
	assert.Equal(t, "200", labels["status"])
}

func newLimited(t *testing.T, limiter Limiter, limit int) (http.Handler, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	h := RateLimit("search", limiter, limit, time.Minute, discard, m)(http.HandlerFunc(ok))
	return h, m
}

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, ""))
}

func TestRateLimitPerClient(t *testing.T) {
	h, m := newLimited(t, ratelimit.NewStore(), 2)

	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.0.2.1"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", rec.Header().Get("X-Error-Code"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimited.WithLabelValues("search")))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.0.2.2"))
	assert.Equal(t, http.StatusOK, rec.Code, "other clients unaffected")
}

func TestRateLimitDisabled(t *testing.T) {
	h, _ := newLimited(t, ratelimit.NewStore(), 0)
	for range 10 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.0.2.1"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("store down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	h, _ := newLimited(t, failingLimiter{}, 1)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.0.2.1"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
