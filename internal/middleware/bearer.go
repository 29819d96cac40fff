package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/openshelf/openshelf/internal/api"
	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/token"
)

// BearerAuth guards protected routes. It resolves the presented bearer
// token against the token store, loads the owning user, and attaches both
// to the request. Absent, unknown, expired and revoked tokens all produce
// the same 401 body.
func BearerAuth(svc *auth.Service, logger *slog.Logger) fiber.Handler {
	unauthenticated := func(c *fiber.Ctx) error {
		return c.Status(http.StatusUnauthorized).JSON(api.Envelope{Status: false, Message: "Unauthenticated"})
	}

	return func(c *fiber.Ctx) error {
		value := auth.ParseBearer(c.Get(fiber.HeaderAuthorization))
		if value == "" {
			return unauthenticated(c)
		}

		user, err := svc.ResolveUser(c.UserContext(), value)
		if err != nil {
			if !errors.Is(err, token.ErrNotFound) {
				logger.Error("bearer resolution failed",
					slog.String("op", "middleware.bearer"),
					slog.String("request_id", auth.RequestID(c)),
					slog.Any("error", err),
				)
			}
			return unauthenticated(c)
		}

		auth.SetCurrentUser(c, user)
		return c.Next()
	}
}
