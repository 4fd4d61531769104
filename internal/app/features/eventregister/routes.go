// internal/app/features/eventregister/routes.go
package eventregister

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the event registration route. Public.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Register)
}
