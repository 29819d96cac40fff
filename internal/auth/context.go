package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openshelf/openshelf/internal/identity"
)

// Locals keys shared with the middleware layer.
const (
	userLocalKey      = "auth_user"
	requestIDLocalKey = "X-Request-ID"
)

// SetCurrentUser stashes the resolved user on the request.
func SetCurrentUser(c *fiber.Ctx, user identity.User) {
	c.Locals(userLocalKey, user)
}

// CurrentUser returns the user resolved by the bearer middleware, if any.
func CurrentUser(c *fiber.Ctx) (identity.User, bool) {
	user, ok := c.Locals(userLocalKey).(identity.User)
	return user, ok
}

// RequestID returns the correlation id assigned by the request-id middleware.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocalKey).(string)
	return id
}
