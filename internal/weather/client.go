// Package weather performs the outbound current-conditions lookup against weatherapi.com.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/weather-mcp/internal/common"
	"github.com/bobmcallan/weather-mcp/internal/config"
)

// ChunkSize is the read size of the body reassembly loop.
const ChunkSize = 1024

// ErrResponseTooLarge is returned when the upstream body exceeds the configured cap.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// Doer is the HTTP transport capability. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-200 upstream status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status code %d", e.Code)
}

// Client issues GET requests to the weather provider's current-conditions endpoint.
type Client struct {
	scheme           string
	authority        string
	path             string
	timeout          time.Duration
	maxResponseBytes int64
	doer             Doer
	logger           *common.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithDoer replaces the HTTP transport.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// NewClient creates a client from the weather section of the config.
func NewClient(cfg config.WeatherConfig, logger *common.Logger, opts ...Option) *Client {
	c := &Client{
		scheme:           cfg.Scheme,
		authority:        cfg.Authority,
		path:             cfg.Path,
		timeout:          cfg.GetTimeout(),
		maxResponseBytes: cfg.MaxResponseBytes,
		logger:           logger,
	}
	if c.maxResponseBytes <= 0 {
		c.maxResponseBytes = 5 << 20
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		// No client-level timeout: the per-call context deadline bounds the request.
		c.doer = &http.Client{}
	}
	return c
}

// Timeout returns the per-call deadline applied by Current.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// EncodeLocation percent-encodes a location for the q parameter. Spaces become %20.
func EncodeLocation(location string) string {
	return strings.ReplaceAll(url.QueryEscape(location), "+", "%20")
}

// RequestURL builds the outbound URL. The key is inserted verbatim.
func (c *Client) RequestURL(key, location string) *url.URL {
	return &url.URL{
		Scheme:   c.scheme,
		Host:     c.authority,
		Path:     c.path,
		RawQuery: "key=" + key + "&q=" + EncodeLocation(location),
	}
}

// RedactKey replaces every occurrence of key in s.
func RedactKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "REDACTED")
}

// Current fetches current conditions for location and returns the raw body.
// The body is closed on every path.
func (c *Client) Current(ctx context.Context, key, location string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.RequestURL(key, location)
	safeURL := RedactKey(u.String(), key)

	c.logger.Debug().Str("method", http.MethodGet).Str("url", safeURL).Msg("weather request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %s", RedactKey(err.Error(), key))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "weather-mcp/"+config.GetVersion())

	start := time.Now()
	resp, err := c.doer.Do(req)
	duration := time.Since(start)
	if err != nil {
		msg := RedactKey(err.Error(), key)
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("request timed out after %s: %s", c.timeout, msg)
		}
		c.logger.Error().Str("url", safeURL).Int64("duration_ms", duration.Milliseconds()).Str("error", msg).Msg("weather request failed")
		return nil, &TransportError{msg: msg, err: err}
	}
	defer func() {
		// Drain so the connection can be reused, then close.
		io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxResponseBytes))
		resp.Body.Close()
	}()

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("weather response")

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := ReadChunks(resp.Body, ChunkSize, c.maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}
	return body, nil
}

// TransportError wraps a connection, DNS, TLS or deadline failure with a
// message that has the API key removed.
type TransportError struct {
	msg string
	err error
}

func (e *TransportError) Error() string { return e.msg }

// Unwrap exposes the underlying error for errors.Is checks.
func (e *TransportError) Unwrap() error { return e.err }

// ReadChunks reads r in chunkSize pieces until end of stream and returns the
// reassembled bytes. A short read does not end the loop; only io.EOF does.
func ReadChunks(r io.Reader, chunkSize int, max int64) ([]byte, error) {
	if chunkSize <= 0 {
		chunkSize = ChunkSize
	}
	var body []byte
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if max > 0 && int64(len(body)+n) > max {
				return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, max)
			}
			body = append(body, buf[:n]...)
		}
		if err == io.EOF {
			return body, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
