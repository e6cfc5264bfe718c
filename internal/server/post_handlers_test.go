package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestToggleLikeEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := createHandlerTestUser(t, s.db, "alice")
	bob := createHandlerTestUser(t, s.db, "bob")
	post := createHandlerTestPost(t, s.db, bob)

	app := fiber.New()
	app.Post("/api/posts/:postId/like", withUser(alice.ID), s.ToggleLike)

	url := fmt.Sprintf("/api/posts/%d/like", post.ID)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Liked bool `json:"liked"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Liked {
		t.Fatal("expected liked=true after first toggle")
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Liked {
		t.Fatal("expected liked=false after second toggle")
	}

	// Liking a post that doesn't exist is a 404.
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/posts/9999/like", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSaveAndListSavedEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := createHandlerTestUser(t, s.db, "alice")
	bob := createHandlerTestUser(t, s.db, "bob")
	post := createHandlerTestPost(t, s.db, bob)

	app := fiber.New()
	app.Post("/api/posts/:postId/save", withUser(alice.ID), s.ToggleSave)
	app.Get("/api/posts/saved", withUser(alice.ID), s.GetSavedPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/posts/%d/save", post.ID), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/saved", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	var saved []struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != post.ID {
		t.Fatalf("expected saved list [%d], got %+v", post.ID, saved)
	}
}

func TestCreatePostEndpoint_Validation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := createHandlerTestUser(t, s.db, "alice")

	app := fiber.New()
	app.Post("/api/posts", withUser(alice.ID), s.CreatePost)

	body := []byte(`{"caption":"no image"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body = []byte(`{"caption":"hello","image_url":"https://example.com/img.jpg"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}
