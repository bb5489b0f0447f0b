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

type UsersHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /api/users. The response echoes the public
// fields only; the password hash never appears in any response body.
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req platformsdk.CreateUserRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		platformsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			platformsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrUsernameTaken):
			platformsdk.ErrUsernameTaken.WriteError(w)
		default:
			// Store detail stays in the log; the caller sees a generic 500.
			log.Error("create user failed", "err", err)
			platformsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, platformsdk.CreateUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
