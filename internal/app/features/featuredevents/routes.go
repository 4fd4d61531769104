// internal/app/features/featuredevents/routes.go
package featuredevents

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the featured-events route. Public, no API key.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
}
