package tollsdk

import "encoding/json"

// TokenResponse is returned by POST /oauth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenClaims are the decoded claims of the presented token.
type TokenClaims struct {
	Subject   string `json:"sub"`
	ClientID  string `json:"client_id"`
	Type      string `json:"type"`
	Issuer    string `json:"iss,omitempty"`
	ID        string `json:"jti,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenMetadata is the server-side record of the token. Timestamps are epoch
// milliseconds.
type TokenMetadata struct {
	ClientID  string `json:"clientId"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// DataResponse is returned by GET /data.
type DataResponse struct {
	Message   string          `json:"message"`
	User      TokenClaims     `json:"user"`
	Token     TokenMetadata   `json:"token"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// MessageResponse is a bare confirmation, e.g. from POST /oauth/logout.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is returned by GET /health.
type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	App       string `json:"app"`
}

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each backing dependency as "ok" or "error: ...".
type HealthChecks struct {
	Database   string `json:"database"`
	TokenStore string `json:"token_store"`
}

// NotFoundResponse is returned for unknown paths.
type NotFoundResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}
