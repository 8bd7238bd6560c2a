// Package client provides the HTTP plumbing shared by every Telstra API call.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout applies when no WithTimeout option is given.
const DefaultTimeout = 30 * time.Second

// Client wraps http.Client with default headers and optional bearer auth.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeaders adds multiple custom headers to all requests.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithTokenSource authorizes every request with tokens from ts.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.httpClient.Transport = &oauth2.Transport{Source: ts, Base: base}
	}
}

// WithBearerToken authorizes every request with a fixed access token.
func WithBearerToken(tok *oauth2.Token) Option {
	return WithTokenSource(oauth2.StaticTokenSource(tok))
}

// WithTransport replaces the underlying round tripper.
// Apply it before WithTokenSource so the token transport wraps it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// New creates a new Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Timeout reports the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
	Latency    time.Duration
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Request performs an HTTP request with the given method, URL, headers, and body.
// The response body is read completely and closed before returning.
func (c *Client) Request(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Add request-specific headers
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       data,
		Latency:    time.Since(start),
	}, nil
}

// Do performs the HTTP request with default headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	// Apply default headers
	for k, v := range c.headers {
		if req.Header.Get(k) == "" { // Don't override if already set
			req.Header.Set(k, v)
		}
	}

	return c.httpClient.Do(req)
}
