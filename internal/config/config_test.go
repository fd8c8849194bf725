package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather-mcp.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Name != "Weather API Router" {
		t.Errorf("expected default name Weather API Router, got %s", cfg.Server.Name)
	}
	if !cfg.IsStdio() {
		t.Errorf("expected default transport stdio, got %s", cfg.Server.Transport)
	}
	if cfg.Server.Port != 4250 {
		t.Errorf("expected default port 4250, got %d", cfg.Server.Port)
	}
	if cfg.Weather.Scheme != "https" {
		t.Errorf("expected default scheme https, got %s", cfg.Weather.Scheme)
	}
	if cfg.Weather.Authority != "api.weatherapi.com" {
		t.Errorf("expected default authority api.weatherapi.com, got %s", cfg.Weather.Authority)
	}
	if cfg.Weather.Path != "/v1/current.json" {
		t.Errorf("expected default path /v1/current.json, got %s", cfg.Weather.Path)
	}
	if cfg.Weather.GetTimeout() != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %s", cfg.Weather.GetTimeout())
	}
	if cfg.Secrets.Backend != "env" {
		t.Errorf("expected default secrets backend env, got %s", cfg.Secrets.Backend)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("expected default config to validate, got %v", issues)
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.Server.Port != 4250 {
		t.Errorf("expected default port 4250, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	path := writeTOML(t, `
[server]
transport = "http"
host = "0.0.0.0"
port = 9090

[weather]
authority = "weather.internal:8443"
timeout = "3s"

[secrets]
backend = "static"

[secrets.values]
WEATHER_API_KEY = "abc123"

[logging]
level = "debug"
outputs = ["console", "file"]
`)

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.IsStdio() {
		t.Error("expected http transport")
	}
	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("expected address 0.0.0.0:9090, got %s", cfg.Address())
	}
	if cfg.Weather.Authority != "weather.internal:8443" {
		t.Errorf("expected authority override, got %s", cfg.Weather.Authority)
	}
	if cfg.Weather.GetTimeout() != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", cfg.Weather.GetTimeout())
	}
	if cfg.Weather.Path != "/v1/current.json" {
		t.Errorf("expected default path preserved, got %s", cfg.Weather.Path)
	}
	if cfg.Secrets.Backend != "static" {
		t.Errorf("expected static backend, got %s", cfg.Secrets.Backend)
	}
	if cfg.Secrets.Values["WEATHER_API_KEY"] != "abc123" {
		t.Errorf("expected static secret value, got %q", cfg.Secrets.Values["WEATHER_API_KEY"])
	}
	if len(cfg.Logging.Outputs) != 2 {
		t.Errorf("expected 2 log outputs, got %v", cfg.Logging.Outputs)
	}
}

func TestLoadFromFiles_MultipleFiles(t *testing.T) {
	base := writeTOML(t, `
[server]
port = 5000
host = "base-host"
`)
	override := writeTOML(t, `
[server]
port = 6000
`)

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 6000 {
		t.Errorf("expected later file to win with port 6000, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "base-host" {
		t.Errorf("expected host from first file, got %s", cfg.Server.Host)
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/weather-mcp.toml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	path := writeTOML(t, "[server\nport = ")
	_, err := LoadFromFiles(path)
	if err == nil {
		t.Error("expected error for invalid TOML, got nil")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Setenv("WEATHER_MCP_TRANSPORT", "http")
	t.Setenv("WEATHER_MCP_HOST", "env-host")
	t.Setenv("WEATHER_MCP_PORT", "9999")
	t.Setenv("WEATHER_MCP_LOG_LEVEL", "error")
	t.Setenv("WEATHER_MCP_API_AUTHORITY", "127.0.0.1:8080")
	t.Setenv("WEATHER_MCP_SECRETS_BACKEND", "static")

	applyEnvOverrides(cfg)

	if cfg.Server.Transport != "http" {
		t.Errorf("expected env transport http, got %s", cfg.Server.Transport)
	}
	if cfg.Server.Host != "env-host" {
		t.Errorf("expected env host env-host, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected env port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env log level error, got %s", cfg.Logging.Level)
	}
	if cfg.Weather.Authority != "127.0.0.1:8080" {
		t.Errorf("expected env authority, got %s", cfg.Weather.Authority)
	}
	if cfg.Secrets.Backend != "static" {
		t.Errorf("expected env secrets backend static, got %s", cfg.Secrets.Backend)
	}
}

func TestApplyEnvOverrides_InvalidPort(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Setenv("WEATHER_MCP_PORT", "not-a-number")

	applyEnvOverrides(cfg)

	if cfg.Server.Port != 4250 {
		t.Errorf("expected default port 4250 for invalid env, got %d", cfg.Server.Port)
	}
}

func TestEnvOverridesFileConfig(t *testing.T) {
	path := writeTOML(t, `
[server]
port = 5000
`)
	t.Setenv("WEATHER_MCP_PORT", "7000")

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected env to override file port, got %d", cfg.Server.Port)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Transport = "http"

	ApplyFlagOverrides(cfg, true, 7777, "flag-host")

	if !cfg.IsStdio() {
		t.Error("expected -stdio flag to force stdio transport")
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("expected flag port 7777, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "flag-host" {
		t.Errorf("expected flag host flag-host, got %s", cfg.Server.Host)
	}
}

func TestApplyFlagOverrides_NoOverride(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Transport = "http"

	ApplyFlagOverrides(cfg, false, 0, "")

	if cfg.IsStdio() {
		t.Error("expected transport to stay http")
	}
	if cfg.Server.Port != 4250 {
		t.Errorf("expected default port 4250, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
}

func TestGetTimeout_InvalidFallsBack(t *testing.T) {
	wc := WeatherConfig{Timeout: "soon"}
	if wc.GetTimeout() != 10*time.Second {
		t.Errorf("expected fallback timeout 10s, got %s", wc.GetTimeout())
	}
	wc.Timeout = "-1s"
	if wc.GetTimeout() != 10*time.Second {
		t.Errorf("expected fallback for negative timeout, got %s", wc.GetTimeout())
	}
}

func TestValidate_ReportsIssues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Transport = "grpc"
	cfg.Weather.Scheme = "ftp"
	cfg.Weather.Authority = ""
	cfg.Weather.Path = "v1/current.json"
	cfg.Weather.Timeout = "later"
	cfg.Weather.MaxResponseBytes = 0
	cfg.Secrets.Backend = "vault"

	issues := cfg.Validate()
	joined := strings.Join(issues, "\n")

	for _, want := range []string{
		"server.transport",
		"weather.scheme",
		"weather.authority",
		"weather.path",
		"weather.timeout",
		"weather.max_response_bytes",
		"secrets.backend",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected issue mentioning %s, got:\n%s", want, joined)
		}
	}
}

func TestValidate_HTTPPortRange(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Transport = "http"
	cfg.Server.Port = 70000

	issues := cfg.Validate()
	if len(issues) != 1 || !strings.Contains(issues[0], "server.port") {
		t.Errorf("expected a single server.port issue, got %v", issues)
	}

	// stdio does not listen, so the port is irrelevant
	cfg.Server.Transport = "stdio"
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("expected no issues for stdio, got %v", issues)
	}
}
