package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestPathFor_AllKindsResolve(t *testing.T) {
	for kind := EndpointKind(0); kind < endpointKindCount; kind++ {
		e := NewEndpoint(kind, "abc123")
		path := PathFor(e)
		if path == "" || !strings.HasPrefix(path, "/") {
			t.Errorf("kind %d: expected /-prefixed path, got %q", kind, path)
		}
		if strings.ContainsAny(path, "{}") {
			t.Errorf("kind %d: unresolved placeholder in %q", kind, path)
		}
		if strings.Contains(path, "//") {
			t.Errorf("kind %d: empty segment in %q", kind, path)
		}
	}
}

func TestPathFor_SubstitutesID(t *testing.T) {
	tests := []struct {
		kind EndpointKind
		id   string
		want string
	}{
		{EndpointPhoto, "123", "/photos/123"},
		{EndpointLikePhoto, "123", "/photos/123/like"},
		{EndpointUnlikePhoto, "123", "/photos/123/like"},
		{EndpointPhotoStatistics, "123", "/photos/123/statistics"},
		{EndpointPhotoDownload, "123", "/photos/123/download"},
		{EndpointUser, "jdoe", "/users/jdoe"},
		{EndpointUserPortfolio, "jdoe", "/users/jdoe/portfolio"},
		{EndpointUserPhotos, "jdoe", "/users/jdoe/photos"},
		{EndpointUserLikes, "jdoe", "/users/jdoe/likes"},
		{EndpointUserCollections, "jdoe", "/users/jdoe/collections"},
		{EndpointUserStatistics, "jdoe", "/users/jdoe/statistics"},
		{EndpointCollection, "206", "/collections/206"},
		{EndpointCollectionPhotos, "206", "/collections/206/photos"},
		{EndpointRelatedCollections, "206", "/collections/206/related"},
		{EndpointAddToCollection, "206", "/collections/206/add"},
		{EndpointRemoveFromCollection, "206", "/collections/206/remove"},
		{EndpointTopic, "wallpapers", "/topics/wallpapers"},
		{EndpointTopicPhotos, "wallpapers", "/topics/wallpapers/photos"},
		{EndpointUser, "a/b c", "/users/a%2Fb%20c"},
		{EndpointPhotos, "ignored", "/photos"},
		{EndpointRandomPhoto, "", "/photos/random"},
		{EndpointSearchPhotos, "", "/search/photos"},
		{EndpointTotalStats, "", "/stats/total"},
		{EndpointMonthStats, "", "/stats/month"},
		{EndpointCurrentUser, "", "/me"},
		{EndpointOAuthToken, "", "/oauth/token"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewEndpoint(tt.kind, tt.id).Path(); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEndpointMethod(t *testing.T) {
	tests := []struct {
		kind EndpointKind
		want string
	}{
		{EndpointPhoto, http.MethodGet},
		{EndpointPhotos, http.MethodGet},
		{EndpointUpdatePhoto, http.MethodPut},
		{EndpointUpdateCurrentUser, http.MethodPut},
		{EndpointUpdateCollection, http.MethodPut},
		{EndpointLikePhoto, http.MethodPost},
		{EndpointCreateCollection, http.MethodPost},
		{EndpointAddToCollection, http.MethodPost},
		{EndpointOAuthToken, http.MethodPost},
		{EndpointUnlikePhoto, http.MethodDelete},
		{EndpointDeleteCollection, http.MethodDelete},
		{EndpointRemoveFromCollection, http.MethodDelete},
	}

	for _, tt := range tests {
		e := NewEndpoint(tt.kind, "x")
		if got := e.Method(); got != tt.want {
			t.Errorf("%s: Method() = %s, want %s", e.Path(), got, tt.want)
		}
	}
}

func TestEndpointIsOAuth(t *testing.T) {
	for kind := EndpointKind(0); kind < endpointKindCount; kind++ {
		e := NewEndpoint(kind, "x")
		want := kind == EndpointOAuthAuthorize || kind == EndpointOAuthToken
		if e.IsOAuth() != want {
			t.Errorf("%s: IsOAuth() = %v, want %v", e, e.IsOAuth(), want)
		}
	}
}

func TestEndpointKindValid(t *testing.T) {
	for kind := EndpointKind(0); kind < endpointKindCount; kind++ {
		if !kind.Valid() {
			t.Errorf("kind %d should be valid", kind)
		}
	}
	for _, kind := range []EndpointKind{-1, endpointKindCount, endpointKindCount + 7} {
		if kind.Valid() {
			t.Errorf("kind %d should be invalid", kind)
		}
	}
}

func TestPath_UnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Path to panic for an undeclared kind")
		}
	}()
	_ = NewEndpoint(endpointKindCount, "x").Path()
}

func TestEndpointString_UnknownKind(t *testing.T) {
	want := fmt.Sprintf("unknown endpoint kind %d", endpointKindCount)
	if got := NewEndpoint(endpointKindCount, "x").String(); got != want {
		t.Errorf("String() = %q", got)
	}
}

func TestClient_RejectsUnknownKind(t *testing.T) {
	called := false
	server := newJSONServer(t, http.StatusOK, `{}`, nil, func(*testing.T, *http.Request) { called = true })
	client := New(Credentials{AccessKey: "key"}, WithBaseURL(server.URL))

	_, err := fetch[Photo](context.Background(), client, NewEndpoint(EndpointKind(99), "x"), noParameters{})
	if err == nil || !strings.Contains(err.Error(), "unknown endpoint kind 99") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
	if called {
		t.Error("no request should reach the server")
	}
}
