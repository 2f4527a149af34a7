package api

import (
	"fmt"
	"net/http"
	"net/url"
)

// EndpointKind enumerates every operation the client knows how to call.
type EndpointKind int

const (
	EndpointCurrentUser EndpointKind = iota
	EndpointUpdateCurrentUser
	EndpointUser
	EndpointUserPortfolio
	EndpointUserPhotos
	EndpointUserLikes
	EndpointUserCollections
	EndpointUserStatistics
	EndpointPhotos
	EndpointPhoto
	EndpointRandomPhoto
	EndpointPhotoStatistics
	EndpointPhotoDownload
	EndpointUpdatePhoto
	EndpointLikePhoto
	EndpointUnlikePhoto
	EndpointSearchPhotos
	EndpointSearchCollections
	EndpointSearchUsers
	EndpointCollections
	EndpointCollection
	EndpointCollectionPhotos
	EndpointRelatedCollections
	EndpointCreateCollection
	EndpointUpdateCollection
	EndpointDeleteCollection
	EndpointAddToCollection
	EndpointRemoveFromCollection
	EndpointTopics
	EndpointTopic
	EndpointTopicPhotos
	EndpointTotalStats
	EndpointMonthStats
	EndpointOAuthAuthorize
	EndpointOAuthToken

	endpointKindCount
)

// Endpoint identifies one API operation together with the identifier its
// path needs, if any.
type Endpoint struct {
	Kind EndpointKind
	ID   string
}

// Valid reports whether k is one of the declared kinds.
func (k EndpointKind) Valid() bool {
	return k >= 0 && k < endpointKindCount
}

// NewEndpoint returns the endpoint of the given kind for id.
func NewEndpoint(kind EndpointKind, id string) Endpoint {
	return Endpoint{Kind: kind, ID: id}
}

// PathFor returns the request path for e.
func PathFor(e Endpoint) string {
	return e.Path()
}

// Path renders the path template for the endpoint with its identifier
// substituted and escaped. It is total over the declared kinds; a Kind
// outside them is a programmer error and panics. The client checks
// Kind.Valid before building a request.
func (e Endpoint) Path() string {
	id := url.PathEscape(e.ID)
	switch e.Kind {
	case EndpointCurrentUser, EndpointUpdateCurrentUser:
		return "/me"
	case EndpointUser:
		return "/users/" + id
	case EndpointUserPortfolio:
		return "/users/" + id + "/portfolio"
	case EndpointUserPhotos:
		return "/users/" + id + "/photos"
	case EndpointUserLikes:
		return "/users/" + id + "/likes"
	case EndpointUserCollections:
		return "/users/" + id + "/collections"
	case EndpointUserStatistics:
		return "/users/" + id + "/statistics"
	case EndpointPhotos:
		return "/photos"
	case EndpointPhoto, EndpointUpdatePhoto:
		return "/photos/" + id
	case EndpointRandomPhoto:
		return "/photos/random"
	case EndpointPhotoStatistics:
		return "/photos/" + id + "/statistics"
	case EndpointPhotoDownload:
		return "/photos/" + id + "/download"
	case EndpointLikePhoto, EndpointUnlikePhoto:
		return "/photos/" + id + "/like"
	case EndpointSearchPhotos:
		return "/search/photos"
	case EndpointSearchCollections:
		return "/search/collections"
	case EndpointSearchUsers:
		return "/search/users"
	case EndpointCollections, EndpointCreateCollection:
		return "/collections"
	case EndpointCollection, EndpointUpdateCollection, EndpointDeleteCollection:
		return "/collections/" + id
	case EndpointCollectionPhotos:
		return "/collections/" + id + "/photos"
	case EndpointRelatedCollections:
		return "/collections/" + id + "/related"
	case EndpointAddToCollection:
		return "/collections/" + id + "/add"
	case EndpointRemoveFromCollection:
		return "/collections/" + id + "/remove"
	case EndpointTopics:
		return "/topics"
	case EndpointTopic:
		return "/topics/" + id
	case EndpointTopicPhotos:
		return "/topics/" + id + "/photos"
	case EndpointTotalStats:
		return "/stats/total"
	case EndpointMonthStats:
		return "/stats/month"
	case EndpointOAuthAuthorize:
		return "/oauth/authorize"
	case EndpointOAuthToken:
		return "/oauth/token"
	default:
		panic(fmt.Sprintf("api: unknown endpoint kind %d", e.Kind))
	}
}

// Method returns the HTTP verb the endpoint is called with.
func (e Endpoint) Method() string {
	switch e.Kind {
	case EndpointUpdateCurrentUser, EndpointUpdatePhoto, EndpointUpdateCollection:
		return http.MethodPut
	case EndpointLikePhoto, EndpointCreateCollection, EndpointAddToCollection, EndpointOAuthToken:
		return http.MethodPost
	case EndpointUnlikePhoto, EndpointDeleteCollection, EndpointRemoveFromCollection:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// IsOAuth reports whether the endpoint lives on the OAuth host rather than
// the API host.
func (e Endpoint) IsOAuth() bool {
	return e.Kind == EndpointOAuthAuthorize || e.Kind == EndpointOAuthToken
}

func (e Endpoint) String() string {
	if !e.Kind.Valid() {
		return fmt.Sprintf("unknown endpoint kind %d", e.Kind)
	}
	return e.Method() + " " + e.Path()
}
