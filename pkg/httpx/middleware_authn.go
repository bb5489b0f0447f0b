package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/verysecretivesoftware/platform/pkg/jwtx"
	"github.com/verysecretivesoftware/platform/pkg/slogx"
)

// AuthnMiddleware authenticates requests carrying a bearer token. The
// per-request flow is strictly: extract token, verify, attach identity,
// continue. A failure is terminal for the request; nothing downstream
// runs and the service never retries on the caller's behalf.
//
// A missing token yields 401. Every verification failure, signature or
// expiry alike, yields the same 403 response so callers can't probe for
// why a token was rejected.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, http.StatusUnauthorized,
					"missing_token", "Access token required")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, http.StatusForbidden,
					"invalid_token", "Invalid or expired token")
				return
			}

			// Inject identity into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-style error response for bearer auth.
func writeBearerError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	WriteJSON(w, status, map[string]string{
		"error":   code,
		"message": desc,
	})
}
