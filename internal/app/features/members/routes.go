// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the member directory routes. API key required.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}
