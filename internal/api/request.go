package api

import (
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the Unsplash API host.
	DefaultBaseURL = "https://api.unsplash.com"
	// DefaultOAuthURL is the host serving the OAuth endpoints.
	DefaultOAuthURL = "https://unsplash.com"

	// APIVersion is sent in the Accept-Version header on every request.
	APIVersion = "v1"
)

// Credentials identify the application and, after an OAuth exchange, the
// user acting through it.
type Credentials struct {
	AccessKey   string
	SecretKey   string
	RedirectURI string
	// BearerToken is a user access token. When set it replaces the
	// Client-ID authorization.
	BearerToken string
}

// Authorization returns the Authorization header value for c.
func (c Credentials) Authorization() string {
	if c.BearerToken != "" {
		return "Bearer " + c.BearerToken
	}
	return "Client-ID " + c.AccessKey
}

// Request is a fully built request ready for a Transport.
type Request struct {
	Method string
	URL    string
	Header http.Header
}

// BuildRequest assembles the URL and headers for endpoint. baseURL is the
// scheme and host the endpoint path is appended to.
func BuildRequest(method string, endpoint Endpoint, params Parameters, creds Credentials, baseURL string) *Request {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString(endpoint.Path())
	if params != nil {
		if query := EncodeQuery(params.QueryPairs()); query != "" {
			b.WriteByte('?')
			b.WriteString(query)
		}
	}

	header := make(http.Header)
	header.Set("Accept-Version", APIVersion)
	header.Set("Authorization", creds.Authorization())

	return &Request{
		Method: method,
		URL:    b.String(),
		Header: header,
	}
}
