package api

import "context"

// SearchResult is one page of search hits.
type SearchResult[T any] struct {
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Results    []T `json:"results"`
}

func (r *SearchResult[T]) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("SearchResult", data)
	if err != nil {
		return err
	}
	var out SearchResult[T]
	f.required("total", &out.Total)
	f.required("total_pages", &out.TotalPages)
	f.required("results", &out.Results)
	if err := f.done(); err != nil {
		return err
	}
	*r = out
	return nil
}

// Photos searches photos.
func (s SearchService) Photos(ctx context.Context, params PhotoSearchParameters) (*SearchResult[Photo], error) {
	return searchPhotos(ctx, s, params)
}

func searchPhotos(ctx context.Context, r Requester, params PhotoSearchParameters) (*SearchResult[Photo], error) {
	params.Page, params.PerPage = pageDefaults(deref(params.Page), deref(params.PerPage))
	result, err := fetch[SearchResult[Photo]](ctx, r, NewEndpoint(EndpointSearchPhotos, ""), params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Collections searches collections.
func (s SearchService) Collections(ctx context.Context, query string, page, perPage int) (*SearchResult[Collection], error) {
	return search[Collection](ctx, s, EndpointSearchCollections, query, page, perPage)
}

// Users searches users.
func (s SearchService) Users(ctx context.Context, query string, page, perPage int) (*SearchResult[User], error) {
	return search[User](ctx, s, EndpointSearchUsers, query, page, perPage)
}

func search[T any](ctx context.Context, r Requester, kind EndpointKind, query string, page, perPage int) (*SearchResult[T], error) {
	p, pp := pageDefaults(page, perPage)
	params := SearchParameters{Query: query, Page: p, PerPage: pp}
	result, err := fetch[SearchResult[T]](ctx, r, NewEndpoint(kind, ""), params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
