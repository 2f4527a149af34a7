package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Transport sends one built request and returns the buffered response.
// Implementations must honour ctx cancellation and must not retry.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Response is the fully read result of a request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HTTPTransport adapts an *http.Client to Transport.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport wraps client. A nil client means http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{Client: client}
}

// Do performs exactly one round trip.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// TransportFunc lets a plain function act as a Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
