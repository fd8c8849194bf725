package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/weather-mcp/internal/router"
)

func TestHealthHandler_ReturnsOK(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if _, ok := body["uptime_seconds"]; !ok {
		t.Error("expected uptime_seconds field")
	}
}

func TestHealthHandler_RejectsNonGET(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest("POST", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestHealthHandler_AllowsHEAD(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest("HEAD", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for HEAD, got %d", w.Code)
	}
}

func TestVersionHandler_ReturnsJSON(t *testing.T) {
	handler := NewVersionHandler(nil)

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	for _, field := range []string{"version", "build", "git_commit"} {
		if _, ok := body[field]; !ok {
			t.Errorf("expected %s field in response", field)
		}
	}
}

func TestSecretsHandler_ListsDescriptionsOnly(t *testing.T) {
	list := func() []router.SecretDescription {
		return []router.SecretDescription{
			{Name: "WEATHER_API_KEY", Description: "the api key for weatherapi.com", Required: true},
		}
	}
	handler := NewSecretsHandler(nil, list)

	req := httptest.NewRequest("GET", "/api/secrets", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Secrets []router.SecretDescription `json:"secrets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(body.Secrets) != 1 || body.Secrets[0].Name != "WEATHER_API_KEY" || !body.Secrets[0].Required {
		t.Errorf("unexpected secrets %+v", body.Secrets)
	}
	if strings.Contains(w.Body.String(), "value") {
		t.Error("response should not carry secret values")
	}
}

func TestSecretsHandler_NilLister(t *testing.T) {
	handler := NewSecretsHandler(nil, nil)

	req := httptest.NewRequest("GET", "/api/secrets", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestSecretsHandler_RejectsPost(t *testing.T) {
	handler := NewSecretsHandler(nil, nil)

	req := httptest.NewRequest("POST", "/api/secrets", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestWriteError_Shape(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusBadRequest, "bad input")

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if w.Code != http.StatusBadRequest || body["status"] != "error" || body["error"] != "bad input" {
		t.Errorf("unexpected response %d %v", w.Code, body)
	}
}

func TestRequireMethod_SetsAllow(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/api/version", nil)
	w := httptest.NewRecorder()

	if RequireMethod(w, req, "GET") {
		t.Fatal("expected DELETE to be rejected")
	}
	if w.Header().Get("Allow") != "GET" {
		t.Errorf("expected Allow: GET, got %q", w.Header().Get("Allow"))
	}
}
