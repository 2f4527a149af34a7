package api

import "context"

// Portfolio is the external portfolio link of a user.
type Portfolio struct {
	URL *string `json:"url"`
}

// Get retrieves a user's public profile.
func (s UsersService) Get(ctx context.Context, username string) (*FullUser, error) {
	return getUser(ctx, s, username)
}

func getUser(ctx context.Context, r Requester, username string) (*FullUser, error) {
	result, err := fetch[FullUser](ctx, r, NewEndpoint(EndpointUser, username), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Portfolio retrieves the portfolio link of a user.
func (s UsersService) Portfolio(ctx context.Context, username string) (*Portfolio, error) {
	result, err := fetch[Portfolio](ctx, s, NewEndpoint(EndpointUserPortfolio, username), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Photos retrieves a page of a user's uploads.
func (s UsersService) Photos(ctx context.Context, username string, params UserPhotosParameters) ([]Photo, error) {
	return userPhotos(ctx, s, username, params)
}

func userPhotos(ctx context.Context, r Requester, username string, params UserPhotosParameters) ([]Photo, error) {
	params.Page, params.PerPage = pageDefaults(deref(params.Page), deref(params.PerPage))
	return fetch[[]Photo](ctx, r, NewEndpoint(EndpointUserPhotos, username), params)
}

// Likes retrieves a page of the photos a user liked.
func (s UsersService) Likes(ctx context.Context, username string, params UserLikesParameters) ([]Photo, error) {
	params.Page, params.PerPage = pageDefaults(deref(params.Page), deref(params.PerPage))
	return fetch[[]Photo](ctx, s, NewEndpoint(EndpointUserLikes, username), params)
}

// Collections retrieves a page of the collections a user created.
func (s UsersService) Collections(ctx context.Context, username string, page, perPage int) ([]Collection, error) {
	p, pp := pageDefaults(page, perPage)
	params := PageParameters{Page: p, PerPage: pp}
	return fetch[[]Collection](ctx, s, NewEndpoint(EndpointUserCollections, username), params)
}

// Statistics retrieves the download and view history of a user.
func (s UsersService) Statistics(ctx context.Context, username string, params StatisticsParameters) (*Statistics, error) {
	result, err := fetch[Statistics](ctx, s, NewEndpoint(EndpointUserStatistics, username), params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Get retrieves the profile of the user owning the bearer token.
func (s CurrentUserService) Get(ctx context.Context) (*FullUser, error) {
	return currentUser(ctx, s, NewEndpoint(EndpointCurrentUser, ""), noParameters{})
}

// Update edits the current user's profile. Requires the write_user scope.
func (s CurrentUserService) Update(ctx context.Context, params ProfileParameters) (*FullUser, error) {
	return currentUser(ctx, s, NewEndpoint(EndpointUpdateCurrentUser, ""), params)
}

func currentUser(ctx context.Context, r Requester, endpoint Endpoint, params Parameters) (*FullUser, error) {
	result, err := fetch[FullUser](ctx, r, endpoint, params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
