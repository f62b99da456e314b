package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func engine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	return r
}

func get(r http.Handler, path string, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	r := engine(RateLimit(3))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping", "10.0.0.1").Code)
	}

	w := get(r, "/ping", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")

	assert.Equal(t, http.StatusOK, get(r, "/ping", "10.0.0.2").Code, "limits are per IP")
}

func TestRateLimit_Disabled(t *testing.T) {
	r := engine(RateLimit(0))

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping", "10.0.0.1").Code)
	}
}

func TestRateLimit_IdleVisitorsAreSwept(t *testing.T) {
	clock := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	s := newIPLimiters(2)
	s.now = func() time.Time { return clock }

	assert.True(t, s.allow("10.0.0.1"))
	assert.True(t, s.allow("10.0.0.2"))
	assert.Len(t, s.visitors, 2)

	// .2 keeps talking, .1 goes quiet
	clock = clock.Add(limiterIdleTTL / 2)
	assert.True(t, s.allow("10.0.0.2"))

	clock = clock.Add(limiterIdleTTL / 2)
	assert.True(t, s.allow("10.0.0.3"))

	assert.NotContains(t, s.visitors, "10.0.0.1")
	assert.Contains(t, s.visitors, "10.0.0.2")
	assert.Contains(t, s.visitors, "10.0.0.3")
}

func TestRateLimit_SweepKeepsActiveBudget(t *testing.T) {
	clock := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	s := newIPLimiters(2)
	s.now = func() time.Time { return clock }

	assert.True(t, s.allow("10.0.0.1"))
	assert.True(t, s.allow("10.0.0.1"))
	assert.False(t, s.allow("10.0.0.1"))

	clock = clock.Add(time.Second)
	assert.False(t, s.allow("10.0.0.1"), "an active visitor is not reset")
}

func TestCORS(t *testing.T) {
	preflight := func(r http.Handler, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("any origin", func(t *testing.T) {
		w := preflight(engine(CORSMiddleware(nil)), "https://mesa.example")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://mesa.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		r := engine(CORSMiddleware([]string{"https://mesa.example"}))

		assert.Equal(t, "https://mesa.example", preflight(r, "https://mesa.example").Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, preflight(r, "https://evil.example").Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := engine(RequestLogger(zap.New(core)))

	get(r, "/ping", "10.0.0.1")
	get(r, "/fail", "10.0.0.1")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
		assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	}
}
