// internal/app/features/application/routes.go
package application

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the membership application route. Public.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Submit)
}
