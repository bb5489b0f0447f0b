// Package platformsdk holds the request/response types of the platform
// API plus a small Go client. The server handlers and the client share
// these types so the wire contract only lives in one place.
package platformsdk

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

// UserInfo is the public view of a user. It never carries the password
// hash; that value stays inside the service boundary.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the freshly minted access token. The server
// holds no reference to the token after issuance.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserResponse is returned on successful user creation.
type CreateUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FeatureFlag describes one rollout toggle surfaced on /api/status.
// Fields are sparse; only the ones a given flag uses are populated.
type FeatureFlag struct {
	Enabled           bool     `json:"enabled"`
	Version           string   `json:"version,omitempty"`
	Steps             int      `json:"steps,omitempty"`
	Variant           string   `json:"variant,omitempty"`
	Users             []string `json:"users,omitempty"`
	RolloutPercentage int      `json:"rolloutPercentage,omitempty"`
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	Message   string                 `json:"message"`
	User      UserInfo               `json:"user"`
	Features  map[string]FeatureFlag `json:"features"`
	Timestamp string                 `json:"timestamp"`
}

// ErrorResponse is the uniform error body for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
