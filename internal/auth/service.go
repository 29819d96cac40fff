package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openshelf/openshelf/internal/identity"
	"github.com/openshelf/openshelf/internal/token"
)

// Service ties credential checks to token issuance and revocation.
type Service struct {
	ids    *identity.Service
	tokens token.Store
	logger *slog.Logger
}

// NewService builds the auth service.
func NewService(ids *identity.Service, tokens token.Store, logger *slog.Logger) *Service {
	return &Service{ids: ids, tokens: tokens, logger: logger}
}

// Login authenticates the credentials and, on success, issues a fresh token
// bound to the matched user. Prior tokens for that user stay valid.
func (s *Service) Login(ctx context.Context, email, password string) (token.Token, identity.User, error) {
	user, err := s.ids.Authenticate(ctx, email, password)
	if err != nil {
		return token.Token{}, identity.User{}, err
	}

	tok, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return token.Token{}, identity.User{}, err
	}

	return tok, user, nil
}

// Logout revokes the presented token. Unknown, expired and empty tokens all
// succeed: the caller learns nothing about token validity, and a stale
// client can always sign out.
func (s *Service) Logout(ctx context.Context, value string, requestID string) error {
	if err := s.tokens.Revoke(ctx, value); err != nil {
		// Revocation is best-effort from the client's perspective, but a
		// failing store must not go unnoticed.
		s.logger.Error("token revocation failed",
			slog.String("op", "auth.logout"),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// ResolveUser maps a bearer token value to its owning user.
func (s *Service) ResolveUser(ctx context.Context, value string) (identity.User, error) {
	userID, err := s.tokens.Resolve(ctx, value)
	if err != nil {
		return identity.User{}, err
	}
	user, err := s.ids.Lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return identity.User{}, token.ErrNotFound
		}
		return identity.User{}, err
	}
	return user, nil
}
