package httpx

import (
	"net/http"
	"strings"
)

const bearerScheme = "bearer"

// ExtractBearer pulls the credential out of an Authorization header value.
// A leading "Bearer" scheme is stripped case-insensitively; a header without
// a scheme is taken to be the raw token. present reports whether the header
// carried anything at all, so callers can tell "no header" from "scheme only".
func ExtractBearer(header string) (token string, present bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	if len(header) >= len(bearerScheme) && strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		rest := header[len(bearerScheme):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest), true
		}
	}
	return header, true
}

// SetBearerChallenge adds an RFC 6750 WWW-Authenticate header to w.
func SetBearerChallenge(w http.ResponseWriter, code, desc string) {
	v := `Bearer realm="tollgate"`
	if code != "" {
		v += `, error="` + code + `"`
	}
	if desc != "" {
		v += `, error_description="` + strings.ReplaceAll(desc, `"`, `'`) + `"`
	}
	w.Header().Set("WWW-Authenticate", v)
}
