package api

import "context"

// List retrieves a page of topics.
func (s TopicsService) List(ctx context.Context, params TopicListParameters) ([]Topic, error) {
	return listTopics(ctx, s, params)
}

func listTopics(ctx context.Context, r Requester, params TopicListParameters) ([]Topic, error) {
	params.Page, params.PerPage = pageDefaults(deref(params.Page), deref(params.PerPage))
	return fetch[[]Topic](ctx, r, NewEndpoint(EndpointTopics, ""), params)
}

// Get retrieves a topic by id or slug.
func (s TopicsService) Get(ctx context.Context, idOrSlug string) (*Topic, error) {
	result, err := fetch[Topic](ctx, s, NewEndpoint(EndpointTopic, idOrSlug), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Photos retrieves a page of a topic's photos.
func (s TopicsService) Photos(ctx context.Context, idOrSlug string, params TopicPhotosParameters) ([]Photo, error) {
	params.Page, params.PerPage = pageDefaults(deref(params.Page), deref(params.PerPage))
	return fetch[[]Photo](ctx, s, NewEndpoint(EndpointTopicPhotos, idOrSlug), params)
}
