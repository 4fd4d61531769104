// internal/app/features/businesses/routes.go
package businesses

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the business directory routes. API key required.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}
