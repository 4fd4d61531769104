// internal/app/features/checkemail/routes.go
package checkemail

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the email lookup route. API key required.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Check)
}
