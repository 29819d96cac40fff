package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"status": false,
			"errors": map[string][]string{"email": {"The email has already been taken."}},
		})
	}))
	t.Cleanup(srv.Close)

	err := New(srv.URL).Register(context.Background(), "A", "a@x.com", "secret123", "secret123")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["email"]) == 0 {
		t.Fatalf("expected email field error, got %v", verr.Fields)
	}
}

func TestProfileAttachesBearerToken(t *testing.T) {
	var gotAuthz string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthz = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "User Profile Data",
			"user":    map[string]any{"id": "u1", "name": "A", "email": "a@x.com"},
		})
	}))
	t.Cleanup(srv.Close)

	user, err := New(srv.URL).Profile(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if gotAuthz != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuthz)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestProfileUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "Unauthenticated"})
	}))
	t.Cleanup(srv.Close)

	if _, err := New(srv.URL).Profile(context.Background(), "revoked"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestServerErrorsMapToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	if _, err := New(srv.URL).Login(context.Background(), "a@x.com", "secret123"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
