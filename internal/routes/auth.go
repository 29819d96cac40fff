package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openshelf/openshelf/internal/auth"
)

// RegisterAuthRoutes wires the authentication surface. Logout deliberately
// sits outside the bearer middleware: signing out with a stale or missing
// token still succeeds.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, bearer fiber.Handler, rateLimiter fiber.Handler) {
	r.Post("/register", h.Register)
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Get("/profile", bearer, h.Profile)
	r.Post("/logout", h.Logout)
}
