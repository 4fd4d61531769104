// internal/app/features/apiinfo/handler.go
package apiinfo

import (
	"net/http"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
)

// Version is the API version reported by the root document and ping.
const Version = "v1"

// Handler serves the root API info document.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ServeInfo returns the API description with its endpoint directory.
func (h *Handler) ServeInfo(w http.ResponseWriter, r *http.Request) {
	httpjson.OK(w, map[string]any{
		"name":          "Connexus API",
		"version":       Version,
		"documentation": "https://docs.connexus.team/api",
		"endpoints": map[string]string{
			"events":        "/v1/events",
			"members":       "/v1/members",
			"businesses":    "/v1/businesses",
			"discounts":     "/v1/discounts",
			"announcements": "/v1/announcements",
			"ping":          "/v1/ping",
		},
	})
}
