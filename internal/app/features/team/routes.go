// internal/app/features/team/routes.go
package team

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the team roster route. API key required.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
}
