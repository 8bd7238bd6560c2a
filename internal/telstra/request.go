// Package telstra implements the Telstra messaging v3 calls used by the CLI:
// the client-credentials token grant, free-trial numbers and virtual numbers.
package telstra

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/msgtools/telstra-numbers/internal/client"
	"github.com/msgtools/telstra-numbers/internal/config"
)

// Resource paths under the configured base URL.
const (
	FreeTrialNumbersPath = "/messaging/v3/free-trial-numbers"
	VirtualNumbersPath   = "/messaging/v3/virtual-numbers"
)

// Header names of the messaging v3 protocol set.
const (
	HeaderAPIVersion      = "Telstra-api-version"
	HeaderContentLanguage = "Content-Language"
	HeaderAccept          = "Accept"
	HeaderAcceptCharset   = "Accept-Charset"
	HeaderContentType     = "Content-Type"
)

// Endpoint describes one messaging resource and how requests to it are built.
type Endpoint struct {
	Name            string
	URL             string
	Timeout         time.Duration
	ProtocolHeaders bool
}

// FreeTrialEndpoint returns the free-trial-numbers resource for cfg.
func FreeTrialEndpoint(cfg *config.Config) Endpoint {
	return Endpoint{
		Name:            "free-trial-numbers",
		URL:             cfg.BaseURL + FreeTrialNumbersPath,
		Timeout:         cfg.FreeTrial.Timeout,
		ProtocolHeaders: cfg.FreeTrial.ProtocolHeaders,
	}
}

// VirtualNumbersEndpoint returns the virtual-numbers resource for cfg.
// By default it sends the bearer token only.
func VirtualNumbersEndpoint(cfg *config.Config) Endpoint {
	return Endpoint{
		Name:            "virtual-numbers",
		URL:             cfg.BaseURL + VirtualNumbersPath,
		Timeout:         cfg.VirtualNumbers.Timeout,
		ProtocolHeaders: cfg.VirtualNumbers.ProtocolHeaders,
	}
}

// ProtocolHeaders returns the messaging v3 header set.
func ProtocolHeaders(cfg *config.Config) map[string]string {
	return map[string]string{
		HeaderAPIVersion:      cfg.APIVersion,
		HeaderContentLanguage: cfg.ContentLanguage,
		HeaderAccept:          "application/json",
		HeaderAcceptCharset:   "utf-8",
		HeaderContentType:     "application/json",
	}
}

// Exchange is one completed HTTP call, reported before any error is returned.
type Exchange struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
	Latency    time.Duration
}

// Observer receives every completed exchange.
type Observer func(Exchange)

type options struct {
	logger    *slog.Logger
	observer  Observer
	transport http.RoundTripper
}

// Option configures Authenticate and NewClient.
type Option func(*options)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers a callback for every exchange.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithTransport overrides the HTTP round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		observer: func(Exchange) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Client calls the messaging v3 resources with a granted token.
type Client struct {
	cfg   *config.Config
	token *oauth2.Token
	opts  options
}

// NewClient returns a Client authorized by tok.
func NewClient(cfg *config.Config, tok *oauth2.Token, opts ...Option) *Client {
	return &Client{
		cfg:   cfg,
		token: tok,
		opts:  buildOptions(opts),
	}
}

// newRequester builds the HTTP client for ep: its timeout, its header set and bearer auth.
func (c *Client) newRequester(ep Endpoint) *client.Client {
	clientOpts := []client.Option{client.WithTimeout(ep.Timeout)}
	if c.opts.transport != nil {
		clientOpts = append(clientOpts, client.WithTransport(c.opts.transport))
	}
	if ep.ProtocolHeaders {
		clientOpts = append(clientOpts, client.WithHeaders(ProtocolHeaders(c.cfg)))
	}
	clientOpts = append(clientOpts, client.WithBearerToken(c.bearer()))
	return client.New(clientOpts...)
}

// bearer returns the request credential. The API expects the Bearer scheme
// whatever token_type the grant reported.
func (c *Client) bearer() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: c.token.AccessToken,
		TokenType:   "Bearer",
	}
}

func (c *Client) do(ctx context.Context, op string, ep Endpoint, method string, body []byte) (*client.Response, error) {
	var headers map[string]string
	if body != nil {
		headers = map[string]string{HeaderContentType: "application/json"}
	}
	return send(ctx, c.newRequester(ep), c.opts, op, method, ep.URL, headers, body)
}

// send performs one request, reports it, and maps transport failures.
func send(ctx context.Context, hc *client.Client, o options, op, method, url string, headers map[string]string, body []byte) (*client.Response, error) {
	o.logger.Debug("sending request",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("url", url),
		slog.Duration("timeout", hc.Timeout()),
	)

	resp, err := hc.Request(ctx, method, url, headers, body)
	if err != nil {
		o.logger.Error("request failed", slog.String("op", op), slog.Any("error", err))
		return nil, &TransportError{Op: op, Err: err}
	}

	o.logger.Info("response received",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Int64("latency_ms", resp.Latency.Milliseconds()),
	)
	o.observer(Exchange{
		Op:         op,
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       resp.Body,
		Latency:    resp.Latency,
	})
	return resp, nil
}

func httpError(op string, resp *client.Response) *HTTPError {
	return &HTTPError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       resp.Body,
	}
}
