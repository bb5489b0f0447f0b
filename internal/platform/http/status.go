package http

import (
	"net/http"
	"time"

	"github.com/verysecretivesoftware/platform/internal/platform/service"
	"github.com/verysecretivesoftware/platform/pkg/httpx"
	"github.com/verysecretivesoftware/platform/pkg/platformsdk"
)

type StatusHandler struct {
	FeatureService *service.FeatureService
}

// ServeHTTP returns the API banner, the caller's identity claims and the
// current feature flag set. Runs behind AuthnMiddleware, so the identity
// in context is always verified by the time we get here.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		platformsdk.ErrInvalidToken.WriteError(w)
		return
	}

	response := platformsdk.StatusResponse{
		Message: "Very Secretive Software INC API",
		User: platformsdk.UserInfo{
			ID:       userID,
			Username: httpx.UsernameFromCtx(ctx),
		},
		Features:  h.FeatureService.Flags(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
