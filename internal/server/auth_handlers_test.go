package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSignupAndLoginFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	app := fiber.New()
	app.Post("/api/auth/signup", s.Signup)
	app.Post("/api/auth/login", s.Login)

	signup := []byte(`{"name":"Alice","username":"alice","email":"alice@example.com","password":"Str0ng!Passw0rd"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(signup))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var signupBody struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&signupBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if signupBody.Token == "" {
		t.Fatal("expected a token on signup")
	}

	// Duplicate signup conflicts.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(signup))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	// Login with the right password.
	login := []byte(`{"email":"alice@example.com","password":"Str0ng!Passw0rd"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// Wrong password.
	login = []byte(`{"email":"alice@example.com","password":"wrong"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSignup_WeakPassword(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	app := fiber.New()
	app.Post("/api/auth/signup", s.Signup)

	body := []byte(`{"username":"bob","email":"bob@example.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
