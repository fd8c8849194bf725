package config

import (
	"time"

	"github.com/bobmcallan/weather-mcp/internal/common"
)

const defaultWeatherTimeout = 10 * time.Second

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "Weather API Router",
			Transport: "stdio",
			Host:      "localhost",
			Port:      4250,
		},
		Weather: WeatherConfig{
			Scheme:           "https",
			Authority:        "api.weatherapi.com",
			Path:             "/v1/current.json",
			Timeout:          defaultWeatherTimeout.String(),
			MaxResponseBytes: 5 << 20,
		},
		Secrets: SecretsConfig{
			Backend: "env",
			Values:  map[string]string{},
		},
		Logging: common.LoggingConfig{
			Level:    "info",
			Outputs:  []string{"console"},
			FilePath: "logs/weather-mcp.log",
		},
	}
}
