package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bobmcallan/weather-mcp/internal/common"
	"github.com/bobmcallan/weather-mcp/internal/metrics"
	"github.com/bobmcallan/weather-mcp/internal/weather"
)

// callState names the stages of one get_weather invocation in the logs.
type callState string

const (
	stateValidating callState = "validating_input"
	stateResolving  callState = "resolving_secret"
	stateAwaiting   callState = "awaiting_transport"
	stateDone       callState = "done"
	stateFailed     callState = "failed"
)

// CallTool invokes the named tool with JSON arguments.
//
// Unknown tools yield ErrNotFound, unusable arguments ErrBadRequest, and
// secret or upstream failures ErrExecution. An empty location is not an
// error: it returns a result with IsError set and EmptyLocationMessage.
// None of the returned errors or results contain the API key.
func (r *Router) CallTool(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error) {
	logger := r.logger.WithCorrelationId(uuid.New().String())

	if name != ToolGetWeather {
		logger.Warn().Str("tool", name).Msg("unknown tool")
		r.metrics.ObserveCall("unknown", metrics.OutcomeNotFound)
		return nil, notFound("Tool %s not found", name)
	}

	res, err := r.getWeather(ctx, logger, args)
	if err != nil {
		logger.Warn().Str("tool", name).Str("state", string(stateFailed)).Str("error", err.Error()).Msg("tool call failed")
		r.metrics.ObserveCall(name, outcomeOf(err))
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if res.Failed() {
		outcome = metrics.OutcomeSoftError
	}
	logger.Info().Str("tool", name).Str("state", string(stateDone)).Str("outcome", outcome).Msg("tool call complete")
	r.metrics.ObserveCall(name, outcome)
	return res, nil
}

func (r *Router) getWeather(ctx context.Context, logger *common.Logger, args json.RawMessage) (*ToolResult, error) {
	logger.Debug().Str("state", string(stateValidating)).Int("args_bytes", len(args)).Msg("get_weather")
	location, err := parseLocation(args)
	if err != nil {
		return nil, err
	}
	if location == "" {
		return textResult(EmptyLocationMessage, true), nil
	}

	logger.Debug().Str("state", string(stateResolving)).Str("secret", SecretWeatherAPIKey).Msg("get_weather")
	key, err := r.resolveKey(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("state", string(stateAwaiting)).Str("location", location).Msg("get_weather")
	start := time.Now()
	body, err := r.fetcher.Current(ctx, key, location)
	r.metrics.ObserveUpstream(upstreamResult(err), time.Since(start))
	if err != nil {
		var se *weather.StatusError
		if errors.As(err, &se) {
			return nil, executionError("HTTP request failed with status code %d", se.Code)
		}
		return nil, executionError("failed to fetch the weather: %s", weather.RedactKey(err.Error(), key))
	}

	if !utf8.Valid(body) {
		return nil, executionError("failed to fetch the weather: response body is not valid UTF-8")
	}
	return textResult(string(body), false), nil
}

// resolveKey reads WEATHER_API_KEY. The handle is released before returning.
func (r *Router) resolveKey(ctx context.Context) (string, error) {
	if r.secrets == nil {
		return "", executionError("could not read %s: no secret store configured", SecretWeatherAPIKey)
	}
	h, err := r.secrets.Get(ctx, SecretWeatherAPIKey)
	if err != nil {
		return "", executionError("could not read %s: %v", SecretWeatherAPIKey, err)
	}
	defer h.Release()

	key, err := r.secrets.Reveal(ctx, h)
	if err != nil {
		return "", executionError("could not read %s: %v", SecretWeatherAPIKey, err)
	}
	return key, nil
}

// parseLocation extracts the location string from a JSON object.
func parseLocation(args json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 {
		return "", badRequest("missing arguments: expected a JSON object with a location")
	}
	if !utf8.Valid(trimmed) {
		return "", badRequest("arguments are not valid UTF-8")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil || fields == nil {
		return "", badRequest("arguments must be a JSON object")
	}

	raw, ok := fields["location"]
	if !ok {
		return "", badRequest("missing required argument: location")
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", badRequest("location must be a string")
	}

	var location string
	if err := json.Unmarshal(raw, &location); err != nil {
		return "", badRequest("location must be a string")
	}
	return location, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrBadRequest):
		return metrics.OutcomeBadInput
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeFailed
	}
}

func upstreamResult(err error) string {
	if err == nil {
		return "ok"
	}
	var se *weather.StatusError
	if errors.As(err, &se) {
		return "status_" + strconv.Itoa(se.Code)
	}
	var te *weather.TransportError
	if errors.As(err, &te) {
		return "transport"
	}
	return "read"
}

// String formats the result for logs and debugging.
func (r *ToolResult) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("ToolResult{is_error=%t, bytes=%d}", r.Failed(), len(r.Text()))
}
