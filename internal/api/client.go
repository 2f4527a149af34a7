package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/splashkit/unsplash-cli/internal/debug"
)

// Client is the Unsplash API client.
//
// A Client is safe for concurrent use. The only state shared between calls
// is the rate-limit snapshot, which reflects whichever successful call
// finished last.
type Client struct {
	BaseURL   string
	OAuthURL  string
	Transport Transport
	UserAgent string

	creds         Credentials
	rateLimitMu   sync.Mutex
	lastRateLimit *RateLimitInfo
}

// Compile-time interface implementation checks
var (
	_ Requester      = (*Client)(nil)
	_ RequestBuilder = (*Client)(nil)
	_ Dispatcher     = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.BaseURL = baseURL }
}

// WithOAuthURL points the OAuth endpoints at another host.
func WithOAuthURL(oauthURL string) Option {
	return func(c *Client) { c.OAuthURL = oauthURL }
}

// WithTransport replaces the transport requests are sent through.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.Transport = t }
}

// WithHTTPClient sends requests through client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.Transport = NewHTTPTransport(client) }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

// New creates a new Unsplash API client.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		BaseURL:   DefaultBaseURL,
		OAuthURL:  DefaultOAuthURL,
		Transport: NewHTTPTransport(&http.Client{Transport: defaultRoundTripper()}),
		creds:     creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultRoundTripper clones the default transport and pins TLS 1.2+.
func defaultRoundTripper() http.RoundTripper {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12
	return transport
}

// Credentials returns the credentials the client signs requests with.
func (c *Client) Credentials() Credentials {
	return c.creds
}

// WithBearerToken returns a copy of the client that acts on behalf of the
// user owning token. The rate-limit snapshot is not shared with the copy.
func (c *Client) WithBearerToken(token string) *Client {
	creds := c.creds
	creds.BearerToken = token
	return &Client{
		BaseURL:   c.BaseURL,
		OAuthURL:  c.OAuthURL,
		Transport: c.Transport,
		UserAgent: c.UserAgent,
		creds:     creds,
	}
}

func (c *Client) buildRequest(endpoint Endpoint, params Parameters) *Request {
	base := c.BaseURL
	if endpoint.IsOAuth() {
		base = c.OAuthURL
	}
	req := BuildRequest(endpoint.Method(), endpoint, params, c.creds, base)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return req
}

// PreviewRequest returns the request a call would send without sending it.
func (c *Client) PreviewRequest(endpoint Endpoint, params Parameters) *Request {
	return c.buildRequest(endpoint, params)
}

// dispatch sends req once and classifies the result. A context that ends
// while the transport is running is reported as a transport failure even
// if the transport handed back a response.
func (c *Client) dispatch(ctx context.Context, req *Request) Outcome {
	resp, err := c.Transport.Do(ctx, req)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return Classify(resp, err)
}

// send runs build, dispatch and classify for one call.
func (c *Client) send(ctx context.Context, endpoint Endpoint, params Parameters) (Outcome, error) {
	if !endpoint.Kind.Valid() {
		return Outcome{}, fmt.Errorf("api: unknown endpoint kind %d", endpoint.Kind)
	}
	start := time.Now()
	req := c.buildRequest(endpoint, params)
	outcome := c.dispatch(ctx, req)
	if debug.IsEnabled(ctx) {
		slog.Debug("request complete",
			"endpoint", endpoint.String(),
			"status", outcome.StatusCode,
			"outcome", outcome.Kind.String(),
			"duration", time.Since(start),
		)
	}
	if err := outcome.AsError(req); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// fetch runs one call and decodes the success payload into T. Rate-limit
// counters are updated only after decoding succeeds.
func fetch[T any](ctx context.Context, r Requester, endpoint Endpoint, params Parameters) (T, error) {
	var zero T
	outcome, err := r.send(ctx, endpoint, params)
	if err != nil {
		return zero, err
	}
	v, err := Decode[T](outcome.Body)
	if err != nil {
		return zero, err
	}
	r.recordRateLimit(outcome.Header)
	return v, nil
}

// exec runs one call whose payload is ignored.
func exec(ctx context.Context, r Requester, endpoint Endpoint, params Parameters) error {
	outcome, err := r.send(ctx, endpoint, params)
	if err != nil {
		return err
	}
	r.recordRateLimit(outcome.Header)
	return nil
}
