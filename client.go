package nwswx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIHost is the production API host.
const DefaultAPIHost = "api.weather.gov"

const defaultTimeout = 10 * time.Second

// Client talks to the National Weather Service forecast API. Its only
// per-instance state is the identity/host pair fixed at construction, so a
// single Client is safe for concurrent use.
type Client struct {
	useragentID string
	apiHost     string
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIHost points the client at an alternate API host.
func WithAPIHost(host string) Option {
	return func(c *Client) { c.apiHost = host }
}

// WithBaseURL overrides the full base URL, scheme included, taking precedence
// over WithAPIHost. Mostly useful for pointing the client at a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to install an
// instrumented transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on the client's HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger attaches a logger; completed requests are logged at debug
// level, failures at warn. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client identifying itself as useragentID, a contact string
// (website or email) per the api.weather.gov usage policy.
func New(useragentID string, opts ...Option) (*Client, error) {
	if useragentID == "" {
		return nil, errors.New("useragent identity is required")
	}
	c := &Client{
		useragentID: useragentID,
		apiHost:     DefaultAPIHost,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = "https://" + c.apiHost
	}
	return c, nil
}

// get runs one call end to end: validate and build, issue the GET, classify
// the outcome, decode the body.
func (c *Client) get(ctx context.Context, op Operation, pathArgs []string, query url.Values, format Format) (*Result, error) {
	desc, err := c.buildRequest(op, pathArgs, query, format)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, desc.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", desc.userAgent)
	if desc.accept != "" {
		req.Header.Set("Accept", desc.accept)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, cause: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if err := classifyResponse(resp.StatusCode, contentType, body); err != nil {
		c.logger.Warn("api request failed",
			"operation", string(op),
			"status", resp.StatusCode,
		)
		return nil, err
	}

	c.logger.Debug("api request",
		"operation", string(op),
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return decodeResponse(op, desc.format, contentType, body)
}
