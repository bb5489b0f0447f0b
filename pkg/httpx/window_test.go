package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/verysecretivesoftware/platform/pkg/httpx"
)

func TestWindowLimiterAdmit(t *testing.T) {
	t.Run("admits exactly the quota", func(t *testing.T) {
		limiter := httpx.NewWindowLimiter(httpx.WindowLimitConfig{
			MaxRequests: 1000,
			Window:      15 * time.Minute,
		})

		for i := range 1000 {
			allowed, _ := limiter.Admit("10.0.0.1")
			require.True(t, allowed, "request %d should be admitted", i+1)
		}

		allowed, retryAfter := limiter.Admit("10.0.0.1")
		require.False(t, allowed, "request 1001 should be rejected")
		require.Greater(t, retryAfter, time.Duration(0))
		require.LessOrEqual(t, retryAfter, 15*time.Minute)
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := httpx.NewWindowLimiter(httpx.WindowLimitConfig{
			MaxRequests: 1,
			Window:      time.Minute,
		})

		allowed, _ := limiter.Admit("10.0.0.1")
		require.True(t, allowed)
		allowed, _ = limiter.Admit("10.0.0.1")
		require.False(t, allowed)

		allowed, _ = limiter.Admit("10.0.0.2")
		require.True(t, allowed, "a different key has its own window")
	})

	t.Run("window reset readmits", func(t *testing.T) {
		limiter := httpx.NewWindowLimiter(httpx.WindowLimitConfig{
			MaxRequests: 2,
			Window:      50 * time.Millisecond,
		})

		for range 2 {
			allowed, _ := limiter.Admit("10.0.0.1")
			require.True(t, allowed)
		}
		allowed, _ := limiter.Admit("10.0.0.1")
		require.False(t, allowed)

		time.Sleep(60 * time.Millisecond)

		allowed, _ = limiter.Admit("10.0.0.1")
		require.True(t, allowed, "a new window starts once the old one elapses")
	})

	t.Run("concurrent admissions are never undercounted", func(t *testing.T) {
		limiter := httpx.NewWindowLimiter(httpx.WindowLimitConfig{
			MaxRequests: 1000,
			Window:      15 * time.Minute,
		})

		var wg sync.WaitGroup
		results := make([]bool, 1000)
		for i := range 1000 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _ = limiter.Admit("10.0.0.1")
			}()
		}
		wg.Wait()

		for i, allowed := range results {
			require.True(t, allowed, "concurrent request %d should be admitted", i)
		}

		// All 1000 were counted: the very next request tips the quota.
		allowed, _ := limiter.Admit("10.0.0.1")
		require.False(t, allowed)
	})
}

func TestWindowLimitMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejections carry retry timing", func(t *testing.T) {
		middleware := httpx.WindowLimitMiddleware(httpx.WindowLimitConfig{
			MaxRequests: 1,
			Window:      time.Minute,
		}, httpx.IPKeyExtractor)
		limited := middleware(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})

	t.Run("allows when no key can be extracted", func(t *testing.T) {
		noKey := func(*http.Request) string { return "" }
		middleware := httpx.WindowLimitMiddleware(httpx.WindowLimitConfig{
			MaxRequests: 1,
			Window:      time.Minute,
		}, noKey)
		limited := middleware(okHandler)

		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
