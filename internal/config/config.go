package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/weather-mcp/internal/common"
)

// Config represents the weather-mcp configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Weather WeatherConfig        `toml:"weather"`
	Secrets SecretsConfig        `toml:"secrets"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Transport string `toml:"transport"` // "stdio" or "http"
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
}

// WeatherConfig describes the upstream weather provider endpoint.
type WeatherConfig struct {
	Scheme           string `toml:"scheme"`
	Authority        string `toml:"authority"`
	Path             string `toml:"path"`
	Timeout          string `toml:"timeout"`
	MaxResponseBytes int64  `toml:"max_response_bytes"`
}

// GetTimeout parses the upstream timeout, falling back to the default on bad input.
func (c *WeatherConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultWeatherTimeout
	}
	return d
}

// SecretsConfig selects the secret store backend.
// Backend "env" reads process environment variables (optionally prefixed),
// "static" reads Values. Static values are meant for local development.
type SecretsConfig struct {
	Backend   string            `toml:"backend"`
	EnvPrefix string            `toml:"env_prefix"`
	Values    map[string]string `toml:"values"`
}

// Address returns host:port for the HTTP transport.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsStdio reports whether the server should speak MCP over stdin/stdout.
func (c *Config) IsStdio() bool {
	return strings.EqualFold(strings.TrimSpace(c.Server.Transport), "stdio")
}

// LoadFromFiles loads configuration with priority:
// defaults -> file1 -> file2 -> ... -> env.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies WEATHER_MCP_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if transport := os.Getenv("WEATHER_MCP_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if host := os.Getenv("WEATHER_MCP_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("WEATHER_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("WEATHER_MCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if authority := os.Getenv("WEATHER_MCP_API_AUTHORITY"); authority != "" {
		config.Weather.Authority = authority
	}
	if backend := os.Getenv("WEATHER_MCP_SECRETS_BACKEND"); backend != "" {
		config.Secrets.Backend = backend
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, stdio bool, port int, host string) {
	if stdio {
		config.Server.Transport = "stdio"
	}
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns a list of configuration problems. An empty list means the
// configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	switch strings.ToLower(strings.TrimSpace(c.Server.Transport)) {
	case "stdio", "http":
	default:
		issues = append(issues, fmt.Sprintf("server.transport must be \"stdio\" or \"http\", got %q", c.Server.Transport))
	}
	if !c.IsStdio() && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Weather.Scheme {
	case "http", "https":
	default:
		issues = append(issues, fmt.Sprintf("weather.scheme must be \"http\" or \"https\", got %q", c.Weather.Scheme))
	}
	if c.Weather.Authority == "" {
		issues = append(issues, "weather.authority is required")
	}
	if !strings.HasPrefix(c.Weather.Path, "/") {
		issues = append(issues, fmt.Sprintf("weather.path must start with /, got %q", c.Weather.Path))
	}
	if c.Weather.Timeout != "" {
		if d, err := time.ParseDuration(c.Weather.Timeout); err != nil || d <= 0 {
			issues = append(issues, fmt.Sprintf("weather.timeout is not a positive duration: %q", c.Weather.Timeout))
		}
	}
	if c.Weather.MaxResponseBytes <= 0 {
		issues = append(issues, "weather.max_response_bytes must be positive")
	}

	switch c.Secrets.Backend {
	case "env", "static":
	default:
		issues = append(issues, fmt.Sprintf("secrets.backend must be \"env\" or \"static\", got %q", c.Secrets.Backend))
	}

	return issues
}
