package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verysecretivesoftware/platform/internal/platform/service"
	"github.com/verysecretivesoftware/platform/pkg/httpx"
	"github.com/verysecretivesoftware/platform/pkg/platformsdk"
	"github.com/verysecretivesoftware/platform/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /api/login: verify credentials, mint a token.
// Every credential failure maps to the same 401 body.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req platformsdk.LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		platformsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	session, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			platformsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		platformsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, platformsdk.LoginResponse{
		Token: session.Token,
		User: platformsdk.UserInfo{
			ID:       session.User.ID,
			Username: session.User.Username,
		},
	})
}
