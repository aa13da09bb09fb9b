package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// LogoutHandler serves POST /oauth/logout. It must sit behind
// AuthnMiddleware.
type LogoutHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Revoke the presented token
//	@Description	Deletes the server-side record of the bearer token. Later requests with it fail.
//	@Tags			OAuth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tollsdk.MessageResponse	"Token revoked"
//	@Failure		401	{object}	tollsdk.Error			"missing, invalid, expired or revoked token"
//	@Failure		500	{object}	tollsdk.Error			"token store unavailable"
//	@Router			/oauth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := TokenFromContext(ctx)
	if !ok {
		service.ErrServerError.WriteError(w)
		return
	}

	if err := h.TokenService.Revoke(ctx, token); err != nil {
		service.AsAuthError(err).WriteError(w)
		return
	}

	slogx.FromContext(ctx).Info("token revoked")
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Token revoked"})
}
