package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/verysecretivesoftware/platform/pkg/httpx"
	"github.com/verysecretivesoftware/platform/pkg/jwtx"
)

func TestAuthnMiddleware(t *testing.T) {
	secret := []byte("authn-middleware-test-secret")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, "platform-api")
	require.NoError(t, err)

	var gotUserID, gotUsername string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httpx.UserIDFromCtx(r.Context())
		gotUsername = httpx.UsernameFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := httpx.AuthnMiddleware(verifier)(inner)

	validToken := func(t *testing.T) string {
		t.Helper()
		claims := jwtx.NewAccessClaims("user-1", "alice", "platform-api", time.Hour, time.Now().UTC())
		token, err := signer.Sign(claims)
		require.NoError(t, err)
		return token
	}

	t.Run("no authorization header yields 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("non-bearer scheme yields 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
		req.Header.Set("Authorization", "Bearer "+validToken(t))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-1", gotUserID)
		require.Equal(t, "alice", gotUsername)
	})

	t.Run("tampered and expired tokens are indistinguishable", func(t *testing.T) {
		tampered := validToken(t)
		tampered = tampered[:len(tampered)-2] + "xx"

		expiredClaims := jwtx.NewAccessClaims(
			"user-1", "alice", "platform-api",
			time.Hour, time.Now().UTC().Add(-2*time.Hour),
		)
		expired, err := signer.Sign(expiredClaims)
		require.NoError(t, err)

		var bodies []string
		var codes []int
		for _, token := range []string{tampered, expired} {
			req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			codes = append(codes, rec.Code)
			bodies = append(bodies, rec.Body.String())
		}

		require.Equal(t, http.StatusForbidden, codes[0])
		require.Equal(t, codes[0], codes[1])
		require.Equal(t, bodies[0], bodies[1], "failure responses must not reveal the rejection reason")

		var resp map[string]string
		require.NoError(t, json.Unmarshal([]byte(bodies[0]), &resp))
		require.Equal(t, "invalid_token", resp["error"])
	})
}
