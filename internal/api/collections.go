package api

import "context"

// CollectionPhotoResult is returned when a photo is added to or removed
// from a collection.
type CollectionPhotoResult struct {
	Photo      *Photo      `json:"photo,omitempty"`
	Collection *Collection `json:"collection,omitempty"`
	User       *User       `json:"user,omitempty"`
	CreatedAt  *Timestamp  `json:"created_at,omitempty"`
}

func (r *CollectionPhotoResult) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("CollectionPhotoResult", data)
	if err != nil {
		return err
	}
	var out CollectionPhotoResult
	f.optional("photo", &out.Photo)
	f.required("collection", &out.Collection)
	f.optional("user", &out.User)
	f.optional("created_at", &out.CreatedAt)
	if err := f.done(); err != nil {
		return err
	}
	*r = out
	return nil
}

// List retrieves a page of all collections.
func (s CollectionsService) List(ctx context.Context, page, perPage int) ([]Collection, error) {
	return listCollections(ctx, s, page, perPage)
}

func listCollections(ctx context.Context, r Requester, page, perPage int) ([]Collection, error) {
	p, pp := pageDefaults(page, perPage)
	params := PageParameters{Page: p, PerPage: pp}
	return fetch[[]Collection](ctx, r, NewEndpoint(EndpointCollections, ""), params)
}

// Get retrieves a specific collection by ID.
func (s CollectionsService) Get(ctx context.Context, id string) (*Collection, error) {
	return getCollection(ctx, s, id)
}

func getCollection(ctx context.Context, r Requester, id string) (*Collection, error) {
	result, err := fetch[Collection](ctx, r, NewEndpoint(EndpointCollection, id), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Photos retrieves a page of the photos in a collection.
func (s CollectionsService) Photos(ctx context.Context, id string, page, perPage int) ([]Photo, error) {
	p, pp := pageDefaults(page, perPage)
	params := PageParameters{Page: p, PerPage: pp}
	return fetch[[]Photo](ctx, s, NewEndpoint(EndpointCollectionPhotos, id), params)
}

// Related retrieves collections similar to the given one.
func (s CollectionsService) Related(ctx context.Context, id string) ([]Collection, error) {
	return fetch[[]Collection](ctx, s, NewEndpoint(EndpointRelatedCollections, id), noParameters{})
}

// Create creates a new collection. Requires the write_collections scope.
func (s CollectionsService) Create(ctx context.Context, params CollectionParameters) (*Collection, error) {
	return saveCollection(ctx, s, NewEndpoint(EndpointCreateCollection, ""), params)
}

// Update edits an existing collection.
func (s CollectionsService) Update(ctx context.Context, id string, params CollectionParameters) (*Collection, error) {
	return saveCollection(ctx, s, NewEndpoint(EndpointUpdateCollection, id), params)
}

func saveCollection(ctx context.Context, r Requester, endpoint Endpoint, params CollectionParameters) (*Collection, error) {
	result, err := fetch[Collection](ctx, r, endpoint, params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete deletes a collection.
func (s CollectionsService) Delete(ctx context.Context, id string) error {
	return deleteCollection(ctx, s, id)
}

func deleteCollection(ctx context.Context, r Requester, id string) error {
	return exec(ctx, r, NewEndpoint(EndpointDeleteCollection, id), noParameters{})
}

// AddPhoto adds a photo to a collection.
func (s CollectionsService) AddPhoto(ctx context.Context, collectionID, photoID string) (*CollectionPhotoResult, error) {
	return collectionPhoto(ctx, s, NewEndpoint(EndpointAddToCollection, collectionID), photoID)
}

// RemovePhoto removes a photo from a collection.
func (s CollectionsService) RemovePhoto(ctx context.Context, collectionID, photoID string) (*CollectionPhotoResult, error) {
	return collectionPhoto(ctx, s, NewEndpoint(EndpointRemoveFromCollection, collectionID), photoID)
}

func collectionPhoto(ctx context.Context, r Requester, endpoint Endpoint, photoID string) (*CollectionPhotoResult, error) {
	params := CollectionPhotoParameters{PhotoID: photoID}
	result, err := fetch[CollectionPhotoResult](ctx, r, endpoint, params)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
