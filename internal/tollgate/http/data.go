package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
)

type task struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

var sampleTasks = []task{
	{ID: 1, Title: "Complete OAuth implementation", Status: "pending"},
	{ID: 2, Title: "Implement JWT validation", Status: "in-progress"},
	{ID: 3, Title: "Create data endpoint", Status: "completed"},
}

type dataResponse struct {
	Message   string             `json:"message"`
	User      jwtx.Claims        `json:"user"`
	Token     domain.TokenRecord `json:"token"`
	Data      []task             `json:"data"`
	Timestamp string             `json:"timestamp"`
}

// DataHandler godoc
//
//	@Summary		Protected demo resource
//	@Description	Returns the caller's decoded token claims and stored token metadata.
//	@Tags			Data
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tollsdk.DataResponse	"message, user, token, data, timestamp"
//	@Failure		401	{object}	tollsdk.Error			"missing, invalid, expired or revoked token"
//	@Failure		500	{object}	tollsdk.Error			"token store unavailable"
//	@Router			/data [get].
func DataHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		service.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dataResponse{
		Message:   "Successfully authenticated",
		User:      id.Claims,
		Token:     id.Record,
		Data:      sampleTasks,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
