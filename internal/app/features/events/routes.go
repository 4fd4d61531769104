// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the public events routes. No API key required for
// read-only event data.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}
