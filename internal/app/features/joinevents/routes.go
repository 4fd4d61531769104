// internal/app/features/joinevents/routes.go
package joinevents

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the event calendar signup route. Public.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Submit)
}
