package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient creates a client whose API and OAuth hosts both point at
// serverURL.
func newTestClient(serverURL string) *Client {
	return New(Credentials{
		AccessKey:   "test-access-key",
		SecretKey:   "test-secret-key",
		RedirectURI: "urn:ietf:wg:oauth:2.0:oob",
	}, WithBaseURL(serverURL), WithOAuthURL(serverURL))
}

// newJSONServer serves body with status for every request and hands the
// received request to inspect, if set.
func newJSONServer(t *testing.T, status int, body string, header http.Header, inspect func(*testing.T, *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(t, r)
		}
		for k, values := range header {
			for _, v := range values {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

const userJSON = `{
	"id": "QPxL2MGqfrw",
	"updated_at": "2016-07-10T11:00:01-05:00",
	"username": "exampleuser",
	"name": "Joe Example",
	"first_name": "Joe",
	"last_name": "Example",
	"twitter_username": "example",
	"instagram_username": "instantgrammer",
	"portfolio_url": "https://example.com/",
	"bio": "Just an everyday Joe",
	"location": "Montreal",
	"total_likes": 5,
	"total_photos": 10,
	"total_collections": 13,
	"accepted_tos": true,
	"for_hire": false,
	"profile_image": {
		"small": "https://images.unsplash.com/face-springmorning.jpg?q=80&fm=jpg&crop=faces&fit=crop&h=32&w=32",
		"medium": "https://images.unsplash.com/face-springmorning.jpg?q=80&fm=jpg&crop=faces&fit=crop&h=64&w=64",
		"large": "https://images.unsplash.com/face-springmorning.jpg?q=80&fm=jpg&crop=faces&fit=crop&h=128&w=128"
	},
	"links": {
		"self": "https://api.unsplash.com/users/exampleuser",
		"html": "https://unsplash.com/exampleuser",
		"photos": "https://api.unsplash.com/users/exampleuser/photos",
		"likes": "https://api.unsplash.com/users/exampleuser/likes",
		"portfolio": "https://api.unsplash.com/users/exampleuser/portfolio"
	}
}`

const minimalUserJSON = `{"id": "QPxL2MGqfrw", "username": "exampleuser"}`

const urlsJSON = `{
	"raw": "https://images.unsplash.com/face-springmorning.jpg",
	"full": "https://images.unsplash.com/face-springmorning.jpg?q=75&fm=jpg",
	"regular": "https://images.unsplash.com/face-springmorning.jpg?q=75&fm=jpg&w=1080&fit=max",
	"small": "https://images.unsplash.com/face-springmorning.jpg?q=75&fm=jpg&w=400&fit=max",
	"thumb": "https://images.unsplash.com/face-springmorning.jpg?q=75&fm=jpg&w=200&fit=max"
}`

// photoJSON has every optional Photo field present.
const photoJSON = `{
	"id": "Dwu85P9SOIk",
	"slug": "a-man-drinking-coffee-Dwu85P9SOIk",
	"created_at": "2016-05-03T11:00:28-04:00",
	"updated_at": "2016-07-10T11:00:01-05:00",
	"promoted_at": "2016-05-04T10:00:00Z",
	"width": 2448,
	"height": 3264,
	"color": "#6E633A",
	"blur_hash": "LFC$yHwc8^$yIAS$%M%00KxukYIp",
	"description": "A man drinking a coffee.",
	"alt_description": "man in black jacket",
	"likes": 24,
	"liked_by_user": false,
	"current_user_collections": [
		{"id": 206, "title": "Makers: Cat and Ben", "published_at": "2016-01-12T18:16:09-05:00"}
	],
	"urls": ` + urlsJSON + `,
	"links": {
		"self": "https://api.unsplash.com/photos/Dwu85P9SOIk",
		"html": "https://unsplash.com/photos/Dwu85P9SOIk",
		"download": "https://unsplash.com/photos/Dwu85P9SOIk/download",
		"download_location": "https://api.unsplash.com/photos/Dwu85P9SOIk/download"
	},
	"user": ` + userJSON + `,
	"tags": [{"type": "search", "title": "coffee"}, {"type": "search", "title": "man"}],
	"statistics": {
		"downloads": {"total": 1000, "historical": {"change": 50, "resolution": "days", "quantity": 2, "values": [{"date": "2017-05-01", "value": 20}, {"date": "2017-05-02", "value": 30}]}},
		"views": {"total": 5000},
		"likes": {"total": 24}
	}
}`

// minimalPhotoJSON has only the required Photo fields.
const minimalPhotoJSON = `{
	"id": "Dwu85P9SOIk",
	"created_at": "2016-05-03T11:00:28-04:00",
	"width": 2448,
	"height": 3264,
	"urls": ` + urlsJSON + `,
	"user": ` + minimalUserJSON + `
}`

// fullPhotoJSON is the single-photo payload with the extension fields.
const fullPhotoJSON = `{
	"id": "123",
	"created_at": "2016-05-03T11:00:28-04:00",
	"width": 2448,
	"height": 3264,
	"color": "#6E633A",
	"downloads": 1345,
	"views": 48000,
	"likes": 24,
	"exif": {
		"make": "Canon",
		"model": "Canon EOS 40D",
		"name": "Canon, EOS 40D",
		"exposure_time": "0.011111111111111112",
		"aperture": "4.970854",
		"focal_length": "37",
		"iso": 100
	},
	"location": {
		"name": "Montreal, Canada",
		"city": "Montreal",
		"country": "Canada",
		"position": {"latitude": 45.473298, "longitude": -73.638488}
	},
	"related_collections": {
		"total": 1,
		"type": "related",
		"results": [{"id": "ipT7n7b5rZQ", "title": "Coffee"}]
	},
	"urls": ` + urlsJSON + `,
	"user": ` + userJSON + `
}`

const collectionJSON = `{
	"id": 206,
	"title": "Makers: Cat and Ben",
	"description": "Behind-the-scenes footage of the Makers series.",
	"published_at": "2016-01-12T18:16:09-05:00",
	"last_collected_at": "2016-06-02T13:10:03-04:00",
	"updated_at": "2016-07-10T11:00:01-05:00",
	"featured": false,
	"total_photos": 12,
	"private": false,
	"share_key": "312d188df257b957f8b86d2ce20e4766",
	"tags": [{"type": "landing_page", "title": "makers"}],
	"cover_photo": ` + minimalPhotoJSON + `,
	"preview_photos": [{"id": "Dwu85P9SOIk", "urls": ` + urlsJSON + `}],
	"user": ` + minimalUserJSON + `,
	"links": {
		"self": "https://api.unsplash.com/collections/206",
		"html": "https://unsplash.com/collections/206",
		"photos": "https://api.unsplash.com/collections/206/photos",
		"related": "https://api.unsplash.com/collections/206/related"
	}
}`

const topicJSON = `{
	"id": "bo8jQKTaE0Y",
	"slug": "wallpapers",
	"title": "Wallpapers",
	"description": "From epic drone shots to inspiring moments in nature.",
	"published_at": "2020-04-15T19:44:12Z",
	"updated_at": "2021-03-04T15:15:23Z",
	"starts_at": "2020-04-15T00:00:00Z",
	"ends_at": null,
	"featured": true,
	"total_photos": 6233,
	"status": "open",
	"visibility": "featured",
	"owners": [` + minimalUserJSON + `],
	"cover_photo": ` + minimalPhotoJSON + `,
	"preview_photos": [{"id": "Dwu85P9SOIk", "urls": ` + urlsJSON + `}],
	"links": {
		"self": "https://api.unsplash.com/topics/wallpapers",
		"html": "https://unsplash.com/t/wallpapers",
		"photos": "https://api.unsplash.com/topics/wallpapers/photos"
	}
}`
