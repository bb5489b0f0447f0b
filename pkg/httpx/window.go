package httpx

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/verysecretivesoftware/platform/pkg/slogx"
)

// WindowLimitConfig defines the fixed-window admission gate parameters.
//
// The window is fixed, not sliding: a burst straddling a window boundary
// can momentarily admit up to ~2x MaxRequests, and the count hard-resets
// at the boundary. Clients observe that reset, so the algorithm is part
// of the quota contract.
type WindowLimitConfig struct {
	// MaxRequests is the number of requests admitted per key per window.
	MaxRequests int
	// Window is the fixed window duration.
	Window time.Duration
}

// DefaultAdmissionLimit gates the protected API prefix: 1000 requests per
// client IP per 15 minutes.
var DefaultAdmissionLimit = WindowLimitConfig{
	MaxRequests: 1000,
	Window:      15 * time.Minute,
}

// windowEntry is the per-key admission record. count and windowStart are
// only touched under mu so concurrent requests from the same key can
// never be undercounted.
type windowEntry struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// WindowLimiter tracks one fixed-window record per distinct client key.
// State is local to this process; with multiple instances the quota is
// per instance, not global.
type WindowLimiter struct {
	cfg     WindowLimitConfig
	entries sync.Map // map[string]*windowEntry

	mu        sync.Mutex
	lastSweep time.Time
}

// NewWindowLimiter creates an admission gate with the given config.
func NewWindowLimiter(cfg WindowLimitConfig) *WindowLimiter {
	return &WindowLimiter{cfg: cfg, lastSweep: time.Now()}
}

// Admit counts a request against key's current window. It reports whether
// the request is allowed and, when rejected, how long until the window
// resets. The increment is never rolled back, even if the caller later
// abandons the request.
func (l *WindowLimiter) Admit(key string) (allowed bool, retryAfter time.Duration) {
	now := time.Now()

	e := l.entry(key, now)

	e.mu.Lock()
	if now.Sub(e.windowStart) >= l.cfg.Window {
		e.count = 0
		e.windowStart = now
	}
	e.count++
	allowed = e.count <= l.cfg.MaxRequests
	if !allowed {
		retryAfter = l.cfg.Window - now.Sub(e.windowStart)
	}
	e.mu.Unlock()

	l.maybeSweep(now)

	return allowed, retryAfter
}

func (l *WindowLimiter) entry(key string, now time.Time) *windowEntry {
	if v, ok := l.entries.Load(key); ok {
		return v.(*windowEntry)
	}
	v, _ := l.entries.LoadOrStore(key, &windowEntry{windowStart: now})
	return v.(*windowEntry)
}

// maybeSweep drops records whose window elapsed more than one full window
// ago, so one-off client keys don't accumulate forever.
func (l *WindowLimiter) maybeSweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) < l.cfg.Window {
		return
	}
	l.lastSweep = now

	l.entries.Range(func(key, value any) bool {
		e := value.(*windowEntry)
		e.mu.Lock()
		stale := now.Sub(e.windowStart) >= 2*l.cfg.Window
		e.mu.Unlock()
		if stale {
			l.entries.Delete(key)
		}
		return true
	})
}

// WindowLimitMiddleware places a fixed-window admission gate in front of
// next. Rejections carry machine-readable retry timing; a request over
// quota is answered, never silently dropped.
func WindowLimitMiddleware(cfg WindowLimitConfig, keyExtractor KeyExtractor) Middleware {
	limiter := NewWindowLimiter(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				log.Warn("admission gate: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			allowed, retryAfter := limiter.Admit(key)
			if !allowed {
				retrySec := max(int(math.Ceil(retryAfter.Seconds())), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retrySec))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
				w.Header().Set("X-RateLimit-Window", cfg.Window.String())

				log.Warn("admission rejected",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retrySec,
				)

				WriteJSON(w, http.StatusTooManyRequests, map[string]string{
					"error":   "rate_limit_exceeded",
					"message": "Too many requests from this IP, please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdmissionByIP gates by client IP address, the standard configuration
// for the protected API prefix.
func AdmissionByIP(cfg WindowLimitConfig) Middleware {
	return WindowLimitMiddleware(cfg, IPKeyExtractor)
}
