package http

import (
	"net/http"
	"time"

	"github.com/verysecretivesoftware/platform/pkg/httpx"
	"github.com/verysecretivesoftware/platform/pkg/platformsdk"
)

// HealthHandler reports basic service health, uptime and version. It
// always returns 200 while the process is serving.
func HealthHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := platformsdk.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   version,
			Uptime:    time.Since(startTime).String(),
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
