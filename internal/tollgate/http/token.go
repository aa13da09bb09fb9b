package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
)

// Credential headers, in lookup order.
var (
	clientIDHeaders     = []string{"client_id", "client-id"}
	clientSecretHeaders = []string{"client_secret", "client-secret"}
)

func firstHeader(r *http.Request, names []string) string {
	for _, n := range names {
		if v := r.Header.Get(n); v != "" {
			return v
		}
	}
	return ""
}

// TokenHandler serves POST /oauth/token.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Issue an access token
//	@Description	Exchanges client credentials, sent as request headers, for a bearer token.
//	@Description	The token stays valid until it expires or is revoked through /oauth/logout.
//	@Tags			OAuth
//	@Produce		json
//	@Param			client_id		header		string					true	"Client identifier (client-id is also accepted)"
//	@Param			client_secret	header		string					true	"Client secret (client-secret is also accepted)"
//	@Success		200				{object}	tollsdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400				{object}	tollsdk.Error			"missing credentials"
//	@Failure		401				{object}	tollsdk.Error			"invalid credentials"
//	@Failure		429				{object}	tollsdk.Error			"rate limited"
//	@Failure		500				{object}	tollsdk.Error			"token store unavailable"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Router			/oauth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientID := firstHeader(r, clientIDHeaders)
	clientSecret := firstHeader(r, clientSecretHeaders)

	issued, err := h.TokenService.Issue(r.Context(), clientID, clientSecret)
	if err != nil {
		service.AsAuthError(err).WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, issued)
}
