// Package http wires the platform API routes: the admission gate in
// front of everything under /api/, the authentication middleware in
// front of protected handlers, and the handler bodies themselves.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/verysecretivesoftware/platform/internal/platform/service"
	"github.com/verysecretivesoftware/platform/pkg/httpx"
	"github.com/verysecretivesoftware/platform/pkg/jwtx"
	"github.com/verysecretivesoftware/platform/pkg/platformsdk"
	"github.com/verysecretivesoftware/platform/pkg/slogx"
)

// maxBodyBytes bounds request body size (10 MiB).
const maxBodyBytes = 10 << 20

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// AdmissionLimit is the fixed-window quota applied to every route
	// under /api/. Health endpoints are exempt.
	AdmissionLimit httpx.WindowLimitConfig

	AuthService    *service.AuthService
	FeatureService *service.FeatureService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		verifier:       verifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		AdmissionLimit: httpx.DefaultAdmissionLimit,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	// One gate instance shared by every /api route, so the per-client
	// window record counts the whole protected prefix, not one endpoint.
	admission := httpx.AdmissionByIP(r.AdmissionLimit)

	r.registerSystem()
	r.registerAPI(admission)

	// Anything unmatched gets the generic not-found body.
	r.Mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		platformsdk.ErrNotFound.WriteError(w)
	}))
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSystem() {
	// Liveness probe, exempt from the admission gate so monitors polling
	// it can't burn the caller's API quota.
	r.Mux.Handle("GET /health", HealthHandler(r.startTime, r.buildVersion))
}

func (r *Router) registerAPI(admission httpx.Middleware) {
	statusHandler := &StatusHandler{FeatureService: r.FeatureService}
	r.Mux.Handle("GET /api/status",
		httpx.Chain(statusHandler,
			admission,
			httpx.AuthnMiddleware(r.verifier),
		),
	)

	usersHandler := &UsersHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/users",
		httpx.Chain(usersHandler,
			admission,
			httpx.AuthnMiddleware(r.verifier),
		),
	)

	// Login carries credentials, so on top of the shared admission gate
	// it gets a strict token-bucket limit against brute force.
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/login",
		httpx.Chain(loginHandler,
			admission,
			httpx.RateLimitByIP(httpx.LoginLimit),
		),
	)
}
