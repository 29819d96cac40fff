package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any credential mismatch. It is
// deliberately identical for unknown emails and wrong passwords so callers
// cannot probe which addresses are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages the account lifecycle: registration and credential checks.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the input and persists a new user with a bcrypt
// password hash. Validation failures come back as *ValidationError;
// registration never issues a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if err := validateRegisterInput(in); err != nil {
		return User{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		verr := &ValidationError{}
		verr.add("email", "The email has already been taken.")
		return User{}, verr
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			verr := &ValidationError{}
			verr.add("email", "The email has already been taken.")
			return User{}, verr
		}
		return User{}, err
	}

	return user, nil
}

// Lookup fetches a user by id.
func (s *Service) Lookup(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// Authenticate verifies an email/password pair against the stored hash.
// Input shape problems return *ValidationError; any mismatch returns
// ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if err := validateLoginInput(email, password); err != nil {
		return User{}, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
