package app

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/weather-mcp/internal/common"
	"github.com/bobmcallan/weather-mcp/internal/config"
	"github.com/bobmcallan/weather-mcp/internal/handlers"
	"github.com/bobmcallan/weather-mcp/internal/mcp"
	"github.com/bobmcallan/weather-mcp/internal/metrics"
	"github.com/bobmcallan/weather-mcp/internal/router"
	"github.com/bobmcallan/weather-mcp/internal/secrets"
	"github.com/bobmcallan/weather-mcp/internal/weather"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Metrics *metrics.Metrics
	Router  *router.Router

	// MCPServer is shared by the stdio and HTTP transports.
	MCPServer *mcpserver.MCPServer

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	SecretsHandler *handlers.SecretsHandler
	MCPHandler     *mcp.Handler
}

// Option customises App construction.
type Option func(*options)

type options struct {
	weather []weather.Option
	store   secrets.Store
}

// WithWeatherOptions passes options to the weather client.
func WithWeatherOptions(opts ...weather.Option) Option {
	return func(o *options) { o.weather = append(o.weather, opts...) }
}

// WithSecretStore replaces the configured secret store.
func WithSecretStore(s secrets.Store) Option {
	return func(o *options) { o.store = s }
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		var err error
		store, err = secrets.NewStore(cfg.Secrets.Backend, cfg.Secrets.EnvPrefix, cfg.Secrets.Values)
		if err != nil {
			return nil, fmt.Errorf("failed to create secret store: %w", err)
		}
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	client := weather.NewClient(cfg.Weather, logger, o.weather...)
	a.Router = router.New(store, client, logger, a.Metrics)
	if err := a.Router.VerifySchemas(); err != nil {
		return nil, err
	}

	a.MCPServer = mcp.NewServer(a.Router, config.GetVersion(), logger)
	a.initHandlers()

	logger.Info().
		Str("backend", cfg.Secrets.Backend).
		Str("authority", cfg.Weather.Authority).
		Str("timeout", client.Timeout().String()).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.SecretsHandler = handlers.NewSecretsHandler(a.Logger, a.Router.ListSecrets)
	a.MCPHandler = mcp.NewHandler(a.MCPServer, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
