// internal/app/features/discounts/routes.go
package discounts

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the discounts routes. API key required.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}
