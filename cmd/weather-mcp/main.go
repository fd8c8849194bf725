package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/weather-mcp/internal/app"
	"github.com/bobmcallan/weather-mcp/internal/common"
	"github.com/bobmcallan/weather-mcp/internal/config"
	"github.com/bobmcallan/weather-mcp/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	stdio       = flag.Bool("stdio", false, "Use stdio transport (overrides config)")
	serverPort  = flag.Int("port", 0, "HTTP port (overrides config)")
	serverHost  = flag.String("host", "", "HTTP host (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("weather-mcp version %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	if len(configFiles) == 0 {
		for _, path := range []string{"weather-mcp.toml", "config/weather-mcp.toml"} {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	config.ApplyFlagOverrides(cfg, *stdio, *serverPort, *serverHost)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "Configuration error:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, WEATHER_MCP_* environment variables, or CLI flags.")
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	logger.Info().
		Str("name", cfg.Server.Name).
		Str("transport", cfg.Server.Transport).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Str("version", config.GetVersion()).
		Msg("configuration loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	if cfg.IsStdio() {
		runStdio(application, logger)
		return
	}
	runHTTP(application, logger)
}

// runStdio serves MCP on stdin/stdout until the client disconnects or a signal arrives.
func runStdio(application *app.App, logger *common.Logger) {
	logger.Info().Msg("serving MCP over stdio")
	if err := mcpserver.ServeStdio(application.MCPServer); err != nil {
		logger.Error().Str("error", err.Error()).Msg("stdio server error")
		os.Exit(1)
	}
}

// runHTTP serves the HTTP routes and shuts down gracefully on SIGINT or SIGTERM.
func runHTTP(application *app.App, logger *common.Logger) {
	srv := server.New(application)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info().Msg("shutdown signal received")
	case err := <-errChan:
		if err != nil {
			logger.Error().Str("error", err.Error()).Msg("server failed")
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
