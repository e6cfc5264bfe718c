package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

func TestToggleFollowEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := createHandlerTestUser(t, s.db, "alice")
	bob := createHandlerTestUser(t, s.db, "bob")

	app := fiber.New()
	app.Post("/api/users/:userId/follow", withUser(alice.ID), s.ToggleFollow)

	url := fmt.Sprintf("/api/users/%d/follow", bob.ID)

	// Follow.
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Following bool `json:"following"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Following {
		t.Fatal("expected following=true after first toggle")
	}

	// Same request again unfollows.
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Following {
		t.Fatal("expected following=false after second toggle")
	}
}

func TestToggleFollowEndpoint_Self(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := createHandlerTestUser(t, s.db, "alice")

	app := fiber.New()
	app.Post("/api/users/:userId/follow", withUser(alice.ID), s.ToggleFollow)

	url := fmt.Sprintf("/api/users/%d/follow", alice.ID)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for self-follow, got %d", resp.StatusCode)
	}
}

func TestDeleteUserEndpoint_SelfOnly(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := createHandlerTestUser(t, s.db, "alice")
	bob := createHandlerTestUser(t, s.db, "bob")
	createHandlerTestPost(t, s.db, alice)

	app := fiber.New()
	app.Delete("/api/users/:id", withUser(alice.ID), s.DeleteUser)

	// Deleting someone else's account is forbidden.
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", bob.ID), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	// Deleting your own account cascades.
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", alice.ID), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var count int64
	if err := s.db.Model(&models.Post{}).Where("user_id = ?", alice.ID).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected alice's posts gone, found %d", count)
	}
}

func TestGetUserEndpoint_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	app := fiber.New()
	app.Get("/api/users/:id", s.GetUser)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/9999", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	// Malformed IDs are rejected up front.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/users/abc", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
