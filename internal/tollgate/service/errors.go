package service

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/httpx"
)

// Kind classifies an authentication failure. The set is closed.
type Kind int

const (
	KindMissingCredentials Kind = iota + 1
	KindInvalidCredentials
	KindMissingToken
	KindTokenNotFoundOrExpired
	KindTokenExpired
	KindTokenInvalid
	KindServerError
)

type kindInfo struct {
	name    string
	title   string
	message string
	status  int
}

var kinds = map[Kind]kindInfo{
	KindMissingCredentials: {
		"missing_credentials", "Missing client_id or client_secret in headers",
		"Provide client_id and client_secret request headers", http.StatusBadRequest,
	},
	KindInvalidCredentials: {
		"invalid_credentials", "Invalid credentials",
		"Invalid client_id or client_secret", http.StatusUnauthorized,
	},
	KindMissingToken: {
		"missing_token", "Token missing",
		"Please provide a valid JWT token", http.StatusUnauthorized,
	},
	KindTokenNotFoundOrExpired: {
		"token_not_found_or_expired", "Token invalid or expired",
		"Token not found in valid tokens or has expired", http.StatusUnauthorized,
	},
	KindTokenExpired: {
		"token_expired", "Token expired",
		"JWT token has expired", http.StatusUnauthorized,
	},
	KindTokenInvalid: {
		"token_invalid", "Invalid token",
		"JWT token is invalid", http.StatusUnauthorized,
	},
	KindServerError: {
		"server_error", "Internal server error",
		"The request could not be completed", http.StatusInternalServerError,
	},
}

func (k Kind) info() kindInfo {
	if i, ok := kinds[k]; ok {
		return i
	}
	return kinds[KindServerError]
}

// String is the machine-readable name, e.g. "token_expired".
func (k Kind) String() string { return k.info().name }

// Title is the default human-readable summary.
func (k Kind) Title() string { return k.info().title }

// Status is the HTTP status code the kind maps to.
func (k Kind) Status() int { return k.info().status }

// AuthError is the only error type the lifecycle engine returns.
type AuthError struct {
	Kind Kind

	// Title overrides Kind.Title() in responses when set.
	Title string

	// Message overrides the kind's default detail when set.
	Message string

	// Err is the underlying cause. It is never sent to clients.
	Err error
}

// Sentinels for errors.Is; an AuthError matches the sentinel of its kind.
var (
	ErrMissingCredentials     = &AuthError{Kind: KindMissingCredentials}
	ErrInvalidCredentials     = &AuthError{Kind: KindInvalidCredentials}
	ErrMissingToken           = &AuthError{Kind: KindMissingToken}
	ErrTokenNotFoundOrExpired = &AuthError{Kind: KindTokenNotFoundOrExpired}
	ErrTokenExpired           = &AuthError{Kind: KindTokenExpired}
	ErrTokenInvalid           = &AuthError{Kind: KindTokenInvalid}
	ErrServerError            = &AuthError{Kind: KindServerError}
)

func newError(kind Kind, err error) *AuthError {
	return &AuthError{Kind: kind, Err: err}
}

func (e *AuthError) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches any AuthError of the same kind.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

// Body is the JSON body sent for this error.
func (e *AuthError) Body() httpx.ErrorBody {
	b := httpx.ErrorBody{
		Error:   e.Kind.Title(),
		Message: e.Kind.info().message,
		Kind:    e.Kind.String(),
	}
	if e.Title != "" {
		b.Error = e.Title
	}
	if e.Message != "" {
		b.Message = e.Message
	}
	return b
}

// WriteError writes the error response. Token failures also carry an
// RFC 6750 challenge.
func (e *AuthError) WriteError(w http.ResponseWriter) {
	switch e.Kind {
	case KindMissingToken:
		httpx.SetBearerChallenge(w, "", "")
	case KindTokenNotFoundOrExpired, KindTokenExpired, KindTokenInvalid:
		httpx.SetBearerChallenge(w, "invalid_token", e.Kind.Title())
	}
	httpx.WriteError(w, e.Kind.Status(), e.Body())
}

// KindOf returns the kind of err. Errors that are not AuthErrors are server
// errors; nil has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindServerError
}

// AsAuthError converts err into an AuthError, treating unknown errors as
// server errors.
func AsAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}
	return newError(KindServerError, err)
}
