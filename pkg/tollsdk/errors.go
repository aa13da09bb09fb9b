package tollsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error kinds reported by the service.
const (
	KindMissingCredentials     = "missing_credentials"
	KindInvalidCredentials     = "invalid_credentials"
	KindMissingToken           = "missing_token"
	KindTokenNotFoundOrExpired = "token_not_found_or_expired"
	KindTokenExpired           = "token_expired"
	KindTokenInvalid           = "token_invalid"
	KindServerError            = "server_error"
	KindRateLimited            = "rate_limited"
)

// Error is a non-success response from the service.
type Error struct {
	StatusCode int    `json:"-"`
	Title      string `json:"error"`
	Message    string `json:"message"`
	Kind       string `json:"kind"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tollgate: %d %s: %s", e.StatusCode, e.Title, e.Message)
	}
	return fmt.Sprintf("tollgate: %d %s", e.StatusCode, e.Title)
}

// Unauthorized reports whether the call failed authentication.
func (e *Error) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Title == "" {
		apiErr.Title = http.StatusText(resp.StatusCode)
		if apiErr.Kind == "" && resp.StatusCode >= http.StatusInternalServerError {
			apiErr.Kind = KindServerError
		}
	}
	return apiErr
}
