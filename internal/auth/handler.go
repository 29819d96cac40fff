package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/openshelf/openshelf/internal/api"
	"github.com/openshelf/openshelf/internal/identity"
)

// Handler exposes the register/login/profile/logout endpoints.
type Handler struct {
	ids    *identity.Service
	svc    *Service
	logger *slog.Logger
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(ids *identity.Service, svc *Service, logger *slog.Logger) *Handler {
	return &Handler{ids: ids, svc: svc, logger: logger}
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Register handles account creation. It never issues a token; the caller
// logs in separately.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	_, err := h.ids.Register(c.UserContext(), identity.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		var verr *identity.ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusUnprocessableEntity).JSON(api.ValidationFailure{Errors: verr.Fields})
		}
		return err
	}

	return c.Status(http.StatusOK).JSON(api.Envelope{Status: true, Message: "User Registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns a fresh bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	tok, user, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		var verr *identity.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(http.StatusUnprocessableEntity).JSON(api.ValidationFailure{Errors: verr.Fields})
		case errors.Is(err, identity.ErrInvalidCredentials):
			// One message for unknown email and wrong password alike.
			return c.Status(http.StatusUnauthorized).JSON(api.Envelope{Status: false, Message: "Invalid Credentials"})
		}
		return err
	}

	h.logger.Info("login succeeded",
		slog.String("op", "auth.login"),
		slog.String("user_id", user.ID),
		slog.String("request_id", RequestID(c)),
	)

	return c.Status(http.StatusOK).JSON(api.LoginSuccess{
		Status:  true,
		Message: "User Logged in successfully",
		Token:   tok.Value,
	})
}

// Profile returns the authenticated user's public fields. The bearer
// middleware has already resolved the token.
func (h *Handler) Profile(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(api.Envelope{Status: false, Message: "Unauthenticated"})
	}

	return c.Status(http.StatusOK).JSON(api.ProfileSuccess{
		Status:  true,
		Message: "User Profile Data",
		User: api.User{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Logout revokes whatever token the request presented. It reports success
// even when the token was absent or already invalid, so the response leaks
// nothing about token state.
func (h *Handler) Logout(c *fiber.Ctx) error {
	value := ParseBearer(c.Get(fiber.HeaderAuthorization))
	if value != "" {
		if err := h.svc.Logout(c.UserContext(), value, RequestID(c)); err != nil {
			return err
		}
	}
	return c.Status(http.StatusOK).JSON(api.Envelope{Status: true, Message: "User Logged out successfully"})
}
