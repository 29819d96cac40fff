package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	cfg := config.Config{
		AppName:         "openshelf-test",
		AppEnv:          "development",
		Port:            "0",
		TokenTTL:        time.Hour,
		LoginRatePerMin: 100,
	}

	srv, err := New(cfg, nil, cache, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func TestAuthLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Register.
	code, body := doJSON(t, srv, http.MethodPost, "/register", "", map[string]string{
		"name":                  "A",
		"email":                 "a@x.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	})
	if code != http.StatusOK || body["status"] != true {
		t.Fatalf("register: code=%d body=%v", code, body)
	}

	// Duplicate email cites the email field.
	code, body = doJSON(t, srv, http.MethodPost, "/register", "", map[string]string{
		"name":                  "A",
		"email":                 "a@x.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	})
	if code != http.StatusUnprocessableEntity || body["status"] != false {
		t.Fatalf("duplicate register: code=%d body=%v", code, body)
	}
	errs, _ := body["errors"].(map[string]any)
	if _, ok := errs["email"]; !ok {
		t.Fatalf("expected email field error, got %v", body)
	}

	// Wrong password yields the generic message.
	code, body = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "not-the-password",
	})
	if code != http.StatusUnauthorized || body["message"] != "Invalid Credentials" {
		t.Fatalf("bad login: code=%d body=%v", code, body)
	}

	// Unknown email is indistinguishable from a wrong password.
	code2, body2 := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "whatever123",
	})
	if code2 != code || body2["message"] != body["message"] {
		t.Fatalf("credential failures differ: %v vs %v", body, body2)
	}

	// Successful login returns an opaque token.
	code, body = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	})
	if code != http.StatusOK || body["status"] != true {
		t.Fatalf("login: code=%d body=%v", code, body)
	}
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatalf("expected token in login response, got %v", body)
	}

	// Profile with the token, no password field in the payload.
	code, body = doJSON(t, srv, http.MethodGet, "/profile", tok, nil)
	if code != http.StatusOK || body["status"] != true {
		t.Fatalf("profile: code=%d body=%v", code, body)
	}
	user, _ := body["user"].(map[string]any)
	if user["name"] != "A" || user["email"] != "a@x.com" {
		t.Fatalf("unexpected profile user: %v", user)
	}
	for _, forbidden := range []string{"password", "password_hash"} {
		if _, ok := user[forbidden]; ok {
			t.Fatalf("profile leaks %s: %v", forbidden, user)
		}
	}

	// Logout, then the same token must fail authentication.
	code, body = doJSON(t, srv, http.MethodPost, "/logout", tok, nil)
	if code != http.StatusOK || body["status"] != true {
		t.Fatalf("logout: code=%d body=%v", code, body)
	}
	code, _ = doJSON(t, srv, http.MethodGet, "/profile", tok, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("profile after logout: code=%d, want 401", code)
	}
}

func TestLogoutWithoutTokenStillSucceeds(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv, http.MethodPost, "/logout", "", nil)
	if code != http.StatusOK || body["status"] != true {
		t.Fatalf("logout without token: code=%d body=%v", code, body)
	}

	code, body = doJSON(t, srv, http.MethodPost, "/logout", "never-issued", nil)
	if code != http.StatusOK || body["status"] != true {
		t.Fatalf("logout with bogus token: code=%d body=%v", code, body)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv, http.MethodGet, "/profile", "", nil)
	if code != http.StatusUnauthorized || body["status"] != false {
		t.Fatalf("profile without token: code=%d body=%v", code, body)
	}
}

func TestProductCRUD(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/register", "", map[string]string{
		"name":                  "A",
		"email":                 "a@x.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	})
	_, body := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	})
	tok, _ := body["token"].(string)

	// Products are gated by the bearer middleware.
	code, _ := doJSON(t, srv, http.MethodGet, "/products/", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("products without token: code=%d, want 401", code)
	}

	code, body = doJSON(t, srv, http.MethodPost, "/products/", tok, map[string]any{
		"title":       "Desk",
		"description": "Oak desk",
		"cost":        250,
	})
	if code != http.StatusCreated || body["status"] != true {
		t.Fatalf("create product: code=%d body=%v", code, body)
	}
	created, _ := body["product"].(map[string]any)
	productID, _ := created["id"].(string)
	if productID == "" {
		t.Fatalf("expected product id, got %v", body)
	}

	code, body = doJSON(t, srv, http.MethodGet, "/products/", tok, nil)
	if code != http.StatusOK {
		t.Fatalf("list products: code=%d body=%v", code, body)
	}
	items, _ := body["products"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one product, got %v", body)
	}

	code, _ = doJSON(t, srv, http.MethodPut, "/products/"+productID, tok, map[string]any{
		"title": "Standing desk",
		"cost":  400,
	})
	if code != http.StatusOK {
		t.Fatalf("update product: code=%d", code)
	}

	code, _ = doJSON(t, srv, http.MethodDelete, "/products/"+productID, tok, nil)
	if code != http.StatusOK {
		t.Fatalf("delete product: code=%d", code)
	}
	code, _ = doJSON(t, srv, http.MethodDelete, "/products/"+productID, tok, nil)
	if code != http.StatusNotFound {
		t.Fatalf("delete missing product: code=%d, want 404", code)
	}
}
