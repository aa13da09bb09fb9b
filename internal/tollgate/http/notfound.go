package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollsdk"
)

// NotFoundHandler answers every unrouted request.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusNotFound, tollsdk.NotFoundResponse{
		Error: "Endpoint not found",
		Path:  r.URL.RequestURI(),
	})
}
