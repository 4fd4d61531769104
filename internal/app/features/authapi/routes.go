// internal/app/features/authapi/routes.go
package authapi

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth-login", h.Login)
	r.Post("/auth-remember", h.Remember)
	r.Post("/auth-forgot-password", h.ForgotPassword)
	r.Post("/auth-verify-pin", h.VerifyPIN)
}
