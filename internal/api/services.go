package api

// Service accessors group Client methods by resource.
// Each service embeds *Client so it satisfies Requester.

type PhotosService struct{ *Client }

type UsersService struct{ *Client }

type CurrentUserService struct{ *Client }

type CollectionsService struct{ *Client }

type TopicsService struct{ *Client }

type SearchService struct{ *Client }

type StatsService struct{ *Client }

type OAuthService struct{ *Client }

func (c *Client) Photos() PhotosService {
	return PhotosService{c}
}

func (c *Client) Users() UsersService {
	return UsersService{c}
}

func (c *Client) CurrentUser() CurrentUserService {
	return CurrentUserService{c}
}

func (c *Client) Collections() CollectionsService {
	return CollectionsService{c}
}

func (c *Client) Topics() TopicsService {
	return TopicsService{c}
}

func (c *Client) Search() SearchService {
	return SearchService{c}
}

func (c *Client) Stats() StatsService {
	return StatsService{c}
}

func (c *Client) OAuth() OAuthService {
	return OAuthService{c}
}

// pageDefaults fills in the default page and page size. Values below 1 are
// treated as unset.
func pageDefaults(page, perPage int) (*int, *int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &page, &perPage
}
