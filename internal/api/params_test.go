package api

import (
	"reflect"
	"testing"
)

func pairKeys(pairs []QueryPair) []string {
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

func TestQueryPairs_OmitAbsentFields(t *testing.T) {
	tests := []struct {
		name   string
		params Parameters
		want   []string
	}{
		{"empty page", PageParameters{}, []string{}},
		{"page only", PageParameters{Page: Int(3)}, []string{"page"}},
		{"photo list empty", PhotoListParameters{}, []string{}},
		{"photo list order only", PhotoListParameters{OrderBy: OrderPopular}, []string{"order_by"}},
		{"user photos stats", UserPhotosParameters{Stats: Bool(false), Quantity: Int(5)}, []string{"stats", "quantity"}},
		{"user likes orientation", UserLikesParameters{Orientation: OrientationPortrait}, []string{"orientation"}},
		{"random empty", RandomPhotoParameters{}, []string{}},
		{"random filters", RandomPhotoParameters{Topics: []string{"a", "b"}, Count: Int(2)}, []string{"topics", "count"}},
		{"search requires query", PhotoSearchParameters{}, []string{"query"}},
		{"search color", PhotoSearchParameters{Query: "cats", Color: ColorTeal}, []string{"query", "color"}},
		{"collection search", SearchParameters{Query: "x"}, []string{"query"}},
		{"statistics empty", StatisticsParameters{}, []string{}},
		{"collection title", CollectionParameters{Title: String("Trips")}, []string{"title"}},
		{"collection photo", CollectionPhotoParameters{PhotoID: "p1"}, []string{"photo_id"}},
		{"topics empty", TopicListParameters{}, []string{}},
		{"topic photos order", TopicPhotosParameters{OrderBy: OrderOldest}, []string{"order_by"}},
		{"profile bio", ProfileParameters{Bio: String("")}, []string{"bio"}},
		{"photo update empty", PhotoUpdateParameters{}, []string{}},
		{"no parameters", noParameters{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pairKeys(tt.params.QueryPairs())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("keys = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryPairs_OnePairPerPresentField(t *testing.T) {
	params := PhotoSearchParameters{
		Query:         "mountains",
		Page:          Int(2),
		PerPage:       Int(20),
		OrderBy:       OrderRelevant,
		Collections:   []string{"206", "207"},
		ContentFilter: ContentFilterHigh,
		Color:         ColorBlackAndWhite,
		Orientation:   OrientationLandscape,
		Lang:          String("de"),
	}
	want := []QueryPair{
		{"query", "mountains"},
		{"page", "2"},
		{"per_page", "20"},
		{"order_by", "relevant"},
		{"collections", "206,207"},
		{"content_filter", "high"},
		{"color", "black_and_white"},
		{"orientation", "landscape"},
		{"lang", "de"},
	}
	if got := params.QueryPairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("QueryPairs() = %v, want %v", got, want)
	}
}

func TestQueryPairs_CompositeExpansion(t *testing.T) {
	params := PhotoUpdateParameters{
		Description: String("Sunrise"),
		Tags:        []string{"sun", "sea"},
		Location: &LocationParameters{
			Latitude:  Float(45.5),
			Longitude: Float(-73.25),
			City:      String("Montreal"),
		},
		Exif: &ExifParameters{
			Make: String("Canon"),
			ISO:  Int(200),
		},
	}
	want := []QueryPair{
		{"description", "Sunrise"},
		{"tags", "sun,sea"},
		{"location[latitude]", "45.5"},
		{"location[longitude]", "-73.25"},
		{"location[city]", "Montreal"},
		{"exif[make]", "Canon"},
		{"exif[iso_speed_ratings]", "200"},
	}
	if got := params.QueryPairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("QueryPairs() = %v, want %v", got, want)
	}
}

func TestQueryPairs_EditorialList(t *testing.T) {
	params := PhotoListParameters{Page: Int(2), PerPage: Int(4), OrderBy: OrderLatest}
	if got := EncodeQuery(params.QueryPairs()); got != "page=2&per_page=4&order_by=latest" {
		t.Errorf("EncodeQuery() = %q", got)
	}
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name  string
		pairs []QueryPair
		want  string
	}{
		{"empty", nil, ""},
		{"single", []QueryPair{{"query", "cats"}}, "query=cats"},
		{"escapes", []QueryPair{{"query", "red & blue"}, {"location[city]", "São Paulo"}}, "query=red+%26+blue&location%5Bcity%5D=S%C3%A3o+Paulo"},
		{"keeps order", []QueryPair{{"b", "1"}, {"a", "2"}}, "b=1&a=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeQuery(tt.pairs); got != tt.want {
				t.Errorf("EncodeQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthorizeParameters(t *testing.T) {
	params := AuthorizeParameters{
		ClientID:    "key",
		RedirectURI: "http://127.0.0.1:8765/callback",
		Scopes:      []Scope{ScopePublic, ScopeWriteLikes},
	}
	want := "client_id=key&redirect_uri=http%3A%2F%2F127.0.0.1%3A8765%2Fcallback&response_type=code&scope=public+write_likes"
	if got := EncodeQuery(params.QueryPairs()); got != want {
		t.Errorf("EncodeQuery() = %q, want %q", got, want)
	}

	params.State = String("s1")
	keys := pairKeys(params.QueryPairs())
	if keys[len(keys)-1] != "state" {
		t.Errorf("expected state pair last, got %v", keys)
	}
}

func TestTokenParameters(t *testing.T) {
	params := TokenParameters{ClientID: "id", ClientSecret: "secret", RedirectURI: "uri", Code: "abc"}
	want := []string{"client_id", "client_secret", "redirect_uri", "code", "grant_type"}
	if got := pairKeys(params.QueryPairs()); !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
}
