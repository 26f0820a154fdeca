// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-elect/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("Unexpected body: %v", body)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "this election could not be found")

	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Error != "Not Found" {
		t.Errorf("Expected error 'Not Found', got %q", body.Error)
	}
	if body.Message != "this election could not be found" {
		t.Errorf("Unexpected message: %q", body.Message)
	}
}

func TestParseJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(`{"offices": 3}`)))
	var parsed struct {
		Offices int `json:"offices"`
	}
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatalf("ParseJSONBody failed: %v", err)
	}
	if parsed.Offices != 3 {
		t.Errorf("Expected 3, got %d", parsed.Offices)
	}

	bad := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(`not json`)))
	if err := ParseJSONBody(bad, &parsed); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}

func TestWithLoggingCallsNext(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/health", nil))

	if !called {
		t.Error("Wrapped handler was not called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}
