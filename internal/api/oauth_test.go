package api

import (
	"context"
	"net/http"
	"net/url"
	"reflect"
	"testing"
)

func TestAuthorizeURL(t *testing.T) {
	client := New(Credentials{AccessKey: "key", RedirectURI: "http://127.0.0.1:8765/callback"})

	got := client.OAuth().AuthorizeURL([]Scope{ScopePublic, ScopeWriteLikes}, "state-1")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", got, err)
	}
	if u.Host != "unsplash.com" || u.Path != "/oauth/authorize" {
		t.Errorf("unexpected authorize URL %s", got)
	}
	q := u.Query()
	if q.Get("client_id") != "key" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != "http://127.0.0.1:8765/callback" {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
	if q.Get("scope") != "public write_likes" {
		t.Errorf("scope = %q", q.Get("scope"))
	}
	if q.Get("state") != "state-1" {
		t.Errorf("state = %q", q.Get("state"))
	}
}

func TestAuthorizeURL_DefaultsToPublicScope(t *testing.T) {
	client := New(Credentials{AccessKey: "key", RedirectURI: "urn:ietf:wg:oauth:2.0:oob"})
	u, err := url.Parse(client.OAuth().AuthorizeURL(nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("scope") != "public" {
		t.Errorf("scope = %q, want public", u.Query().Get("scope"))
	}
	if u.Query().Has("state") {
		t.Error("state should be omitted when empty")
	}
}

func TestExchangeCode(t *testing.T) {
	server := newJSONServer(t, http.StatusOK, `{"access_token": "091343ce13c8ae780065ecb3b13dc903475dd22cb78a05503c2e0c69c5e98044", "token_type": "bearer", "scope": "public read_photos", "created_at": 1436544465}`, nil, func(t *testing.T, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/oauth/token" {
			t.Errorf("Expected /oauth/token, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("code") != "abc" || q.Get("client_secret") != "test-secret-key" || q.Get("grant_type") != "authorization_code" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
	})

	client := newTestClient(server.URL)
	token, err := client.OAuth().ExchangeCode(context.Background(), "abc")
	if err != nil {
		t.Fatalf("ExchangeCode() error = %v", err)
	}
	if token.AccessToken == "" || token.TokenType != "bearer" || token.CreatedAt != 1436544465 {
		t.Errorf("unexpected token %+v", token)
	}
}

func TestExchangeCode_RequiresSecret(t *testing.T) {
	client := New(Credentials{AccessKey: "key"}, WithTransport(TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		t.Error("no request should be sent without a secret key")
		return nil, nil
	})))

	_, err := client.OAuth().ExchangeCode(context.Background(), "abc")
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestExchangeCode_InvalidGrant(t *testing.T) {
	server := newJSONServer(t, http.StatusUnauthorized, `{"error":"invalid_grant","error_description":"The provided authorization grant is invalid"}`, nil, nil)
	client := newTestClient(server.URL)

	_, err := client.OAuth().ExchangeCode(context.Background(), "expired")
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if StructuredErrorFromError(err).Message != "The provided authorization grant is invalid" {
		t.Errorf("unexpected message %q", StructuredErrorFromError(err).Message)
	}
}

func TestParseScopes(t *testing.T) {
	tests := []struct {
		in   string
		want []Scope
	}{
		{"", nil},
		{"public", []Scope{ScopePublic}},
		{"public,read_user", []Scope{ScopePublic, ScopeReadUser}},
		{"public read_user  write_likes", []Scope{ScopePublic, ScopeReadUser, ScopeWriteLikes}},
		{"public+write_collections", []Scope{ScopePublic, ScopeWriteCollections}},
	}
	for _, tt := range tests {
		if got := ParseScopes(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseScopes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
