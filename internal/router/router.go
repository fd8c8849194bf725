// Package router implements the weather router: a static catalog of tools,
// resources, prompts and secrets, and the get_weather invocation engine.
//
// The router owns no transport. Its capabilities (secret store, weather
// fetcher, logger, metrics) are injected through New, and every operation is
// a plain method call so any host can drive it. internal/mcp adapts it to the
// Model Context Protocol.
package router

import (
	"context"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/bobmcallan/weather-mcp/internal/common"
	"github.com/bobmcallan/weather-mcp/internal/metrics"
	"github.com/bobmcallan/weather-mcp/internal/secrets"
)

// Fetcher performs the upstream current-conditions lookup.
// *weather.Client satisfies it.
type Fetcher interface {
	Current(ctx context.Context, key, location string) ([]byte, error)
}

// Router answers catalog queries and executes get_weather.
// It keeps no state between calls and is safe for concurrent use.
type Router struct {
	secrets secrets.Store
	fetcher Fetcher
	logger  *common.Logger
	metrics *metrics.Metrics
}

// New creates a router. m may be nil.
func New(store secrets.Store, fetcher Fetcher, logger *common.Logger, m *metrics.Metrics) *Router {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Router{
		secrets: store,
		fetcher: fetcher,
		logger:  logger,
		metrics: m,
	}
}

// Name returns the router's display name.
func (r *Router) Name() string {
	return RouterName
}

// Instructions returns the usage contract for the location argument.
func (r *Router) Instructions() string {
	return instructions
}

// Capabilities returns the advertised catalog flags.
func (r *Router) Capabilities() Capabilities {
	return Capabilities{
		Tools: &ToolsCapability{ListChanged: true},
	}
}

// ListTools returns the tool catalog.
func (r *Router) ListTools() []ToolDescriptor {
	r.logger.Debug().Int("count", len(tools)).Msg("list_tools")
	out := make([]ToolDescriptor, len(tools))
	copy(out, tools)
	return out
}

// ListResources returns the resource catalog.
func (r *Router) ListResources() []ResourceDescriptor {
	r.logger.Debug().Int("count", len(resources)).Msg("list_resources")
	out := make([]ResourceDescriptor, len(resources))
	copy(out, resources)
	return out
}

// ReadResource returns the contents of the resource at uri.
func (r *Router) ReadResource(uri string) (*ReadResourceResult, error) {
	r.logger.Debug().Str("uri", uri).Msg("read_resource")
	if uri != ResourceWeatherDataURI {
		return nil, notFound("Resource at %s not found", uri)
	}
	return &ReadResourceResult{
		Contents: []ResourceContents{{
			URI:      uri,
			MIMEType: weatherDataMIMEType,
			Text:     weatherDataText,
		}},
	}, nil
}

// ListPrompts returns the prompt catalog.
func (r *Router) ListPrompts() []PromptDescriptor {
	r.logger.Debug().Int("count", len(prompts)).Msg("list_prompts")
	out := make([]PromptDescriptor, len(prompts))
	for i, p := range prompts {
		out[i] = p
		out[i].Arguments = append([]PromptArgument(nil), p.Arguments...)
	}
	return out
}

// GetPrompt renders the named prompt.
func (r *Router) GetPrompt(name string) (*GetPromptResult, error) {
	r.logger.Debug().Str("name", name).Msg("get_prompt")
	if name != PromptGetWeather {
		return nil, notFound("Prompt %s not found", name)
	}
	return &GetPromptResult{
		Description: getWeatherPromptResultDesc,
		Messages: []PromptMessage{{
			Role: RoleUser,
			Content: TextContent{
				Text: getWeatherPromptText,
				Annotations: &Annotations{
					Audience:  []Role{RoleUser},
					Priority:  1.0,
					Timestamp: "now",
				},
			},
		}},
	}, nil
}

// ListSecrets returns the secrets the host must provide.
func (r *Router) ListSecrets() []SecretDescription {
	r.logger.Debug().Int("count", len(secretCatalog)).Msg("list_secrets")
	out := make([]SecretDescription, len(secretCatalog))
	copy(out, secretCatalog)
	return out
}

// VerifySchemas compiles every tool schema. Arguments are not validated
// against these schemas at call time; this only catches malformed catalog text.
func (r *Router) VerifySchemas() error {
	for _, t := range tools {
		if _, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(t.InputSchema)); err != nil {
			return fmt.Errorf("tool %s: invalid input schema: %w", t.Name, err)
		}
		if t.OutputSchema == "" {
			continue
		}
		if _, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(t.OutputSchema)); err != nil {
			return fmt.Errorf("tool %s: invalid output schema: %w", t.Name, err)
		}
	}
	return nil
}
