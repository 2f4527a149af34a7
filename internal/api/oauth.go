package api

import (
	"context"
	"strings"
)

// Scope is an OAuth permission.
type Scope string

const (
	ScopePublic           Scope = "public"
	ScopeReadUser         Scope = "read_user"
	ScopeWriteUser        Scope = "write_user"
	ScopeReadPhotos       Scope = "read_photos"
	ScopeWritePhotos      Scope = "write_photos"
	ScopeWriteLikes       Scope = "write_likes"
	ScopeWriteFollowers   Scope = "write_followers"
	ScopeReadCollections  Scope = "read_collections"
	ScopeWriteCollections Scope = "write_collections"
)

// AllScopes lists every scope the API knows about.
var AllScopes = []Scope{
	ScopePublic,
	ScopeReadUser,
	ScopeWriteUser,
	ScopeReadPhotos,
	ScopeWritePhotos,
	ScopeWriteLikes,
	ScopeWriteFollowers,
	ScopeReadCollections,
	ScopeWriteCollections,
}

// ParseScopes splits a comma or space separated scope list. Unknown
// names are returned as-is so the server can reject them.
func ParseScopes(s string) []Scope {
	fieldsFn := func(r rune) bool { return r == ',' || r == ' ' || r == '+' }
	var scopes []Scope
	for _, part := range strings.FieldsFunc(s, fieldsFn) {
		scopes = append(scopes, Scope(strings.TrimSpace(part)))
	}
	return scopes
}

// Token is the user access token issued by the token endpoint.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	CreatedAt    int64  `json:"created_at,omitempty"`
}

func (t *Token) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("Token", data)
	if err != nil {
		return err
	}
	var out Token
	f.required("access_token", &out.AccessToken)
	f.optional("token_type", &out.TokenType)
	f.optional("scope", &out.Scope)
	f.optional("refresh_token", &out.RefreshToken)
	f.optional("created_at", &out.CreatedAt)
	if err := f.done(); err != nil {
		return err
	}
	*t = out
	return nil
}

// AuthorizeURL returns the page the user visits to grant scopes to the
// application. state is echoed back to the redirect URI when non-empty.
func (s OAuthService) AuthorizeURL(scopes []Scope, state string) string {
	if len(scopes) == 0 {
		scopes = []Scope{ScopePublic}
	}
	params := AuthorizeParameters{
		ClientID:    s.creds.AccessKey,
		RedirectURI: s.creds.RedirectURI,
		Scopes:      scopes,
	}
	if state != "" {
		params.State = &state
	}
	endpoint := NewEndpoint(EndpointOAuthAuthorize, "")
	return BuildRequest(endpoint.Method(), endpoint, params, s.creds, s.OAuthURL).URL
}

// ExchangeCode trades the code delivered to the redirect URI for a user
// access token.
func (s OAuthService) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if s.creds.SecretKey == "" {
		return nil, &AuthError{Reason: "a secret key is required to exchange an authorization code"}
	}
	params := TokenParameters{
		ClientID:     s.creds.AccessKey,
		ClientSecret: s.creds.SecretKey,
		RedirectURI:  s.creds.RedirectURI,
		Code:         code,
	}
	result, err := fetch[Token](ctx, s, NewEndpoint(EndpointOAuthToken, ""), params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
