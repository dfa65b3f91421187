package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingPrefetcher struct {
	runs atomic.Int32
}

func (p *countingPrefetcher) Prefetch(context.Context) (int, error) {
	p.runs.Add(1)
	return 3, nil
}

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	p := &countingPrefetcher{}
	s := NewScheduler(p, time.Hour, zap.NewNop())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return p.runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.Equal(t, int32(1), p.runs.Load())
}

func TestScheduler_Ticks(t *testing.T) {
	p := &countingPrefetcher{}
	s := NewScheduler(p, 20*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return p.runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()
}

func TestScheduler_Disabled(t *testing.T) {
	p := &countingPrefetcher{}
	s := NewScheduler(p, 0, zap.NewNop())

	s.Start(context.Background())
	s.Stop()
	assert.Zero(t, p.runs.Load())
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestOpsServer_Health(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("healthy", func(t *testing.T) {
		s := NewOpsServer(":0", map[string]Pinger{"postgres": ok}, zap.NewNop())
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "ok", body["postgres"])
	})

	t.Run("degraded", func(t *testing.T) {
		s := NewOpsServer(":0", map[string]Pinger{"postgres": ok, "redis": down}, zap.NewNop())
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "connection refused", body["redis"])
	})
}

func TestOpsServer_Metrics(t *testing.T) {
	s := NewOpsServer(":0", nil, zap.NewNop())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
