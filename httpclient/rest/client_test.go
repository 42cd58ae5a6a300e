package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/servicekit/httpclient"
)

type testUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/users/1" {
			t.Errorf("expected /users/1, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Accept"); ct != "application/json" {
			t.Errorf("expected Accept: application/json, got %s", ct)
		}
		json.NewEncoder(w).Encode(testUser{ID: "1", Name: "Alice", Email: "alice@example.com"})
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Get[testUser](context.Background(), c, "/users/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Name != "Alice" {
		t.Errorf("expected Alice, got %s", resp.Data.Name)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var user testUser
		json.NewDecoder(r.Body).Decode(&user)
		user.Email = "bob@example.com"
		w.WriteHeader(201)
		json.NewEncoder(w).Encode(user)
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Post[testUser](context.Background(), c, "/users", testUser{Name: "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if resp.Data.Name != "Bob" {
		t.Errorf("expected Bob, got %s", resp.Data.Name)
	}
	if resp.Data.Email != "bob@example.com" {
		t.Errorf("expected bob@example.com, got %s", resp.Data.Email)
	}
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(204)
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Delete[struct{}](context.Background(), c, "/users/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}

func TestGet_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": not json`))
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Get[testUser](context.Background(), c, "/users/1")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !httpclient.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGet_NotFound_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		json.NewEncoder(w).Encode(map[string]string{"error": "user not found"})
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Get[map[string]string](context.Background(), c, "/users/999")
	if err == nil {
		t.Fatal("expected error")
	}
	if !httpclient.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
	if resp == nil {
		t.Fatal("expected decoded error response")
	}
	if resp.Data["error"] != "user not found" {
		t.Errorf("expected decoded error body, got %v", resp.Data)
	}
}

func TestGet_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Get[testUser](context.Background(), c, "/users/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Name != "" {
		t.Errorf("expected zero value for empty body, got %+v", resp.Data)
	}
}

func TestNew_PreservesExplicitHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.api+json" {
			t.Errorf("expected custom Accept, got %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"Accept": "application/vnd.api+json"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Get[map[string]any](context.Background(), c, "/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewFromClient(t *testing.T) {
	base, err := httpclient.New(httpclient.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := NewFromClient(base)
	if c.HTTP() != base {
		t.Error("HTTP() should return the wrapped client")
	}
}
