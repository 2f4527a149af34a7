package api

import "context"

// DownloadLink is the tracked download URL of a photo.
type DownloadLink struct {
	URL string `json:"url"`
}

// LikeResult is returned when the current user likes or unlikes a photo.
type LikeResult struct {
	Photo LikedPhoto `json:"photo"`
	User  User       `json:"user"`
}

// List retrieves a page of the editorial feed.
func (s PhotosService) List(ctx context.Context, page, perPage int, orderBy Order) ([]Photo, error) {
	return listPhotos(ctx, s, page, perPage, orderBy)
}

func listPhotos(ctx context.Context, r Requester, page, perPage int, orderBy Order) ([]Photo, error) {
	if orderBy == "" {
		orderBy = OrderLatest
	}
	p, pp := pageDefaults(page, perPage)
	params := PhotoListParameters{Page: p, PerPage: pp, OrderBy: orderBy}
	return fetch[[]Photo](ctx, r, NewEndpoint(EndpointPhotos, ""), params)
}

// Get retrieves a single photo with its EXIF, location and counters.
func (s PhotosService) Get(ctx context.Context, id string) (*FullPhoto, error) {
	return getPhoto(ctx, s, id)
}

func getPhoto(ctx context.Context, r Requester, id string) (*FullPhoto, error) {
	result, err := fetch[FullPhoto](ctx, r, NewEndpoint(EndpointPhoto, id), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Random retrieves one or more random photos. The API always answers with
// a list because count is always sent.
func (s PhotosService) Random(ctx context.Context, params RandomPhotoParameters) ([]Photo, error) {
	return randomPhotos(ctx, s, params)
}

func randomPhotos(ctx context.Context, r Requester, params RandomPhotoParameters) ([]Photo, error) {
	if params.Count == nil {
		params.Count = Int(1)
	}
	return fetch[[]Photo](ctx, r, NewEndpoint(EndpointRandomPhoto, ""), params)
}

// Statistics retrieves the download, view and like history of a photo.
func (s PhotosService) Statistics(ctx context.Context, id string, params StatisticsParameters) (*Statistics, error) {
	return photoStatistics(ctx, s, id, params)
}

func photoStatistics(ctx context.Context, r Requester, id string, params StatisticsParameters) (*Statistics, error) {
	result, err := fetch[Statistics](ctx, r, NewEndpoint(EndpointPhotoStatistics, id), params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DownloadLink retrieves the tracked download URL of a photo. Calling it
// counts as a download.
func (s PhotosService) DownloadLink(ctx context.Context, id string) (*DownloadLink, error) {
	return photoDownloadLink(ctx, s, id)
}

func photoDownloadLink(ctx context.Context, r Requester, id string) (*DownloadLink, error) {
	result, err := fetch[DownloadLink](ctx, r, NewEndpoint(EndpointPhotoDownload, id), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Update edits a photo owned by the current user. Requires the
// write_photos scope.
func (s PhotosService) Update(ctx context.Context, id string, params PhotoUpdateParameters) (*FullPhoto, error) {
	return updatePhoto(ctx, s, id, params)
}

func updatePhoto(ctx context.Context, r Requester, id string, params PhotoUpdateParameters) (*FullPhoto, error) {
	result, err := fetch[FullPhoto](ctx, r, NewEndpoint(EndpointUpdatePhoto, id), params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Like likes a photo on behalf of the current user.
func (s PhotosService) Like(ctx context.Context, id string) (*LikeResult, error) {
	return likePhoto(ctx, s, NewEndpoint(EndpointLikePhoto, id))
}

// Unlike removes the current user's like from a photo.
func (s PhotosService) Unlike(ctx context.Context, id string) (*LikeResult, error) {
	return likePhoto(ctx, s, NewEndpoint(EndpointUnlikePhoto, id))
}

func likePhoto(ctx context.Context, r Requester, endpoint Endpoint) (*LikeResult, error) {
	result, err := fetch[LikeResult](ctx, r, endpoint, noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
