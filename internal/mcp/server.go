// Package mcp exposes the weather router over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/weather-mcp/internal/common"
	"github.com/bobmcallan/weather-mcp/internal/router"
)

// NewServer registers the router's catalog on a new MCP server.
func NewServer(r *router.Router, version string, logger *common.Logger) *server.MCPServer {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	hooks := &server.Hooks{}
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		logger.Warn().Str("method", string(method)).Str("error", err.Error()).Msg("mcp request failed")
	})

	s := server.NewMCPServer(
		r.Name(),
		version,
		server.WithToolCapabilities(r.Capabilities().Tools.ListChanged),
		server.WithInstructions(r.Instructions()),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)

	for _, t := range r.ListTools() {
		s.AddTool(toolFromDescriptor(t), toolHandler(r, t.Name))
	}
	for _, res := range r.ListResources() {
		s.AddResource(
			mcp.NewResource(res.URI, res.Name,
				mcp.WithResourceDescription(res.Description),
				mcp.WithMIMEType(res.MIMEType),
			),
			resourceHandler(r),
		)
	}
	for _, p := range r.ListPrompts() {
		s.AddPrompt(promptFromDescriptor(p), promptHandler(r))
	}

	logger.Info().
		Str("name", r.Name()).
		Str("version", version).
		Int("tools", len(r.ListTools())).
		Int("resources", len(r.ListResources())).
		Int("prompts", len(r.ListPrompts())).
		Msg("MCP server initialized")

	return s
}

func toolFromDescriptor(d router.ToolDescriptor) mcp.Tool {
	tool := mcp.NewToolWithRawSchema(d.Name, d.Description, json.RawMessage(d.InputSchema))
	if d.OutputSchema != "" {
		tool.RawOutputSchema = json.RawMessage(d.OutputSchema)
	}
	return tool
}

func promptFromDescriptor(d router.PromptDescriptor) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(d.Description)}
	for _, a := range d.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(a.Description)}
		if a.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(a.Name, argOpts...))
	}
	return mcp.NewPrompt(d.Name, opts...)
}

// toolHandler forwards the raw arguments to the router. Typed router errors
// (ErrNotFound, ErrBadRequest, ErrExecution) become JSON-RPC errors; soft
// failures stay in the result with isError set.
func toolHandler(r *router.Router, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		res, err := r.CallTool(ctx, name, args)
		if err != nil {
			return nil, err
		}
		return toCallToolResult(res), nil
	}
}

func resourceHandler(r *router.Router) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		res, err := r.ReadResource(request.Params.URI)
		if err != nil {
			return nil, err
		}
		out := make([]mcp.ResourceContents, 0, len(res.Contents))
		for _, c := range res.Contents {
			out = append(out, mcp.TextResourceContents{
				URI:      c.URI,
				MIMEType: c.MIMEType,
				Text:     c.Text,
			})
		}
		return out, nil
	}
}

func promptHandler(r *router.Router) server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		res, err := r.GetPrompt(request.Params.Name)
		if err != nil {
			return nil, err
		}
		messages := make([]mcp.PromptMessage, 0, len(res.Messages))
		for _, m := range res.Messages {
			messages = append(messages, mcp.NewPromptMessage(mcp.Role(m.Role), toContent(m.Content)))
		}
		return mcp.NewGetPromptResult(res.Description, messages), nil
	}
}

func toCallToolResult(res *router.ToolResult) *mcp.CallToolResult {
	out := &mcp.CallToolResult{IsError: res.Failed()}
	for _, c := range res.Content {
		out.Content = append(out.Content, mcp.NewTextContent(c.Text))
	}
	return out
}

// annotatedText is text content whose annotations keep their timestamp on
// the wire. mcp.Annotations only carries audience and priority.
type annotatedText struct {
	mcp.TextContent
	annotations router.Annotations
}

type wireAnnotations struct {
	Audience  []router.Role `json:"audience,omitempty"`
	Priority  float64       `json:"priority"`
	Timestamp string        `json:"timestamp,omitempty"`
}

func (c annotatedText) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string          `json:"type"`
		Text        string          `json:"text"`
		Annotations wireAnnotations `json:"annotations"`
	}{
		Type: c.Type,
		Text: c.Text,
		Annotations: wireAnnotations{
			Audience:  c.annotations.Audience,
			Priority:  c.annotations.Priority,
			Timestamp: c.annotations.Timestamp,
		},
	})
}

// toContent converts router content. Annotated content keeps every
// annotation field, including the timestamp.
func toContent(c router.TextContent) mcp.Content {
	tc := mcp.NewTextContent(c.Text)
	if c.Annotations == nil {
		return tc
	}
	audience := make([]mcp.Role, 0, len(c.Annotations.Audience))
	for _, role := range c.Annotations.Audience {
		audience = append(audience, mcp.Role(role))
	}
	tc.Annotations = &mcp.Annotations{Audience: audience, Priority: c.Annotations.Priority}
	return annotatedText{TextContent: tc, annotations: *c.Annotations}
}
