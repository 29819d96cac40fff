package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/openshelf/openshelf/internal/identity"
	"github.com/openshelf/openshelf/internal/logging"
	"github.com/openshelf/openshelf/internal/token"
)

func newTestService(t *testing.T) (*Service, *identity.Service) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ids := identity.NewService(identity.NewMemoryRepository())
	tokens := token.NewRedisStore(client, time.Hour)
	return NewService(ids, tokens, logging.Discard()), ids
}

func register(t *testing.T, ids *identity.Service) {
	t.Helper()
	_, err := ids.Register(context.Background(), identity.RegisterInput{
		Name:                 "A",
		Email:                "a@x.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, ids := newTestService(t)
	register(t, ids)
	ctx := context.Background()

	tok, user, err := svc.Login(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.Value == "" {
		t.Fatal("expected opaque token")
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	resolved, err := svc.ResolveUser(ctx, tok.Value)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("token resolves to %s, want %s", resolved.ID, user.ID)
	}
}

func TestLoginDoesNotInvalidatePriorTokens(t *testing.T) {
	svc, ids := newTestService(t)
	register(t, ids)
	ctx := context.Background()

	first, _, err := svc.Login(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, _, err := svc.Login(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.Value == second.Value {
		t.Fatal("each login must mint a distinct token")
	}
	if _, err := svc.ResolveUser(ctx, first.Value); err != nil {
		t.Fatalf("first token should still resolve: %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, ids := newTestService(t)
	register(t, ids)

	_, _, err := svc.Login(context.Background(), "a@x.com", "wrong-password")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, ids := newTestService(t)
	register(t, ids)
	ctx := context.Background()

	tok, _, err := svc.Login(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, tok.Value, "req-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ResolveUser(ctx, tok.Value); !errors.Is(err, token.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after logout, got %v", err)
	}

	// Idempotent: logging out the same token again succeeds.
	if err := svc.Logout(ctx, tok.Value, "req-2"); err != nil {
		t.Fatalf("repeat logout: %v", err)
	}
}

func TestResolveUserDeletedAccount(t *testing.T) {
	svc, ids := newTestService(t)
	register(t, ids)
	ctx := context.Background()

	tok, _, err := svc.Login(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// A token whose owner no longer exists behaves like an invalid token.
	freshIDs := identity.NewService(identity.NewMemoryRepository())
	svc.ids = freshIDs
	if _, err := svc.ResolveUser(ctx, tok.Value); !errors.Is(err, token.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for orphaned token, got %v", err)
	}
}

func TestParseBearer(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Bearer   abc123  ", "abc123"},
		{"Basic abc123", ""},
		{"", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		if got := ParseBearer(tc.header); got != tc.want {
			t.Errorf("ParseBearer(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
