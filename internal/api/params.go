package api

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPerPage is the page size used when a caller does not choose one.
const DefaultPerPage = 10

// MaxPerPage is the largest page size the API accepts.
const MaxPerPage = 30

// QueryPair is a single query-string key and value.
type QueryPair struct {
	Key   string
	Value string
}

// Parameters render an operation's inputs as query pairs. Absent optional
// values produce no pair.
type Parameters interface {
	QueryPairs() []QueryPair
}

// EncodeQuery renders pairs as a query string in the order given.
func EncodeQuery(pairs []QueryPair) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// queryBuilder accumulates pairs, skipping absent values.
type queryBuilder struct {
	pairs []QueryPair
}

func (q *queryBuilder) add(key, value string) {
	q.pairs = append(q.pairs, QueryPair{Key: key, Value: value})
}

func (q *queryBuilder) str(key string, v *string) {
	if v != nil {
		q.add(key, *v)
	}
}

func (q *queryBuilder) int(key string, v *int) {
	if v != nil {
		q.add(key, strconv.Itoa(*v))
	}
}

func (q *queryBuilder) bool(key string, v *bool) {
	if v != nil {
		q.add(key, strconv.FormatBool(*v))
	}
}

func (q *queryBuilder) float(key string, v *float64) {
	if v != nil {
		q.add(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

func (q *queryBuilder) list(key string, v []string) {
	if len(v) > 0 {
		q.add(key, strings.Join(v, ","))
	}
}

func (q *queryBuilder) enum(key string, v string) {
	if v != "" {
		q.add(key, v)
	}
}

// Order is the sort order for photo and collection listings.
type Order string

const (
	OrderLatest    Order = "latest"
	OrderOldest    Order = "oldest"
	OrderPopular   Order = "popular"
	OrderViews     Order = "views"
	OrderDownloads Order = "downloads"
	OrderRelevant  Order = "relevant"
	OrderFeatured  Order = "featured"
	OrderPosition  Order = "position"
)

// Orientation filters photos by aspect.
type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
	OrientationSquarish  Orientation = "squarish"
)

// ContentFilter selects how strictly results are filtered.
type ContentFilter string

const (
	ContentFilterLow  ContentFilter = "low"
	ContentFilterHigh ContentFilter = "high"
)

// Color filters search results by dominant colour.
type Color string

const (
	ColorBlackAndWhite Color = "black_and_white"
	ColorBlack         Color = "black"
	ColorWhite         Color = "white"
	ColorYellow        Color = "yellow"
	ColorOrange        Color = "orange"
	ColorRed           Color = "red"
	ColorPurple        Color = "purple"
	ColorMagenta       Color = "magenta"
	ColorGreen         Color = "green"
	ColorTeal          Color = "teal"
	ColorBlue          Color = "blue"
)

// PageParameters select one page of a listing.
type PageParameters struct {
	Page    *int
	PerPage *int
}

func (p PageParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	return q.pairs
}

// PhotoListParameters page through the editorial feed.
type PhotoListParameters struct {
	Page    *int
	PerPage *int
	OrderBy Order
}

func (p PhotoListParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	q.enum("order_by", string(p.OrderBy))
	return q.pairs
}

// UserPhotosParameters filter a user's uploads.
type UserPhotosParameters struct {
	Page        *int
	PerPage     *int
	OrderBy     Order
	Stats       *bool
	Resolution  string
	Quantity    *int
	Orientation Orientation
}

func (p UserPhotosParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	q.enum("order_by", string(p.OrderBy))
	q.bool("stats", p.Stats)
	q.enum("resolution", p.Resolution)
	q.int("quantity", p.Quantity)
	q.enum("orientation", string(p.Orientation))
	return q.pairs
}

// UserLikesParameters filter the photos a user liked.
type UserLikesParameters struct {
	Page        *int
	PerPage     *int
	OrderBy     Order
	Orientation Orientation
}

func (p UserLikesParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	q.enum("order_by", string(p.OrderBy))
	q.enum("orientation", string(p.Orientation))
	return q.pairs
}

// RandomPhotoParameters narrow the pool a random photo is drawn from.
type RandomPhotoParameters struct {
	Collections   []string
	Topics        []string
	Username      *string
	Query         *string
	Orientation   Orientation
	ContentFilter ContentFilter
	Count         *int
}

func (p RandomPhotoParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.list("collections", p.Collections)
	q.list("topics", p.Topics)
	q.str("username", p.Username)
	q.str("query", p.Query)
	q.enum("orientation", string(p.Orientation))
	q.enum("content_filter", string(p.ContentFilter))
	q.int("count", p.Count)
	return q.pairs
}

// PhotoSearchParameters describe a photo search.
type PhotoSearchParameters struct {
	Query         string
	Page          *int
	PerPage       *int
	OrderBy       Order
	Collections   []string
	ContentFilter ContentFilter
	Color         Color
	Orientation   Orientation
	Lang          *string
}

func (p PhotoSearchParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.add("query", p.Query)
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	q.enum("order_by", string(p.OrderBy))
	q.list("collections", p.Collections)
	q.enum("content_filter", string(p.ContentFilter))
	q.enum("color", string(p.Color))
	q.enum("orientation", string(p.Orientation))
	q.str("lang", p.Lang)
	return q.pairs
}

// SearchParameters describe a collection or user search.
type SearchParameters struct {
	Query   string
	Page    *int
	PerPage *int
}

func (p SearchParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.add("query", p.Query)
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	return q.pairs
}

// StatisticsParameters choose the history window for statistics.
type StatisticsParameters struct {
	Resolution string
	Quantity   *int
}

func (p StatisticsParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.enum("resolution", p.Resolution)
	q.int("quantity", p.Quantity)
	return q.pairs
}

// LocationParameters set where a photo was taken.
type LocationParameters struct {
	Latitude     *float64
	Longitude    *float64
	Name         *string
	City         *string
	Country      *string
	Confidential *bool
}

// ExifParameters override a photo's camera metadata.
type ExifParameters struct {
	Make         *string
	Model        *string
	ExposureTime *string
	Aperture     *string
	FocalLength  *string
	ISO          *int
}

// PhotoUpdateParameters edit a photo the current user owns.
type PhotoUpdateParameters struct {
	Description   *string
	ShowOnProfile *bool
	Tags          []string
	Location      *LocationParameters
	Exif          *ExifParameters
}

func (p PhotoUpdateParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.str("description", p.Description)
	q.bool("show_on_profile", p.ShowOnProfile)
	q.list("tags", p.Tags)
	if l := p.Location; l != nil {
		q.float("location[latitude]", l.Latitude)
		q.float("location[longitude]", l.Longitude)
		q.str("location[name]", l.Name)
		q.str("location[city]", l.City)
		q.str("location[country]", l.Country)
		q.bool("location[confidential]", l.Confidential)
	}
	if e := p.Exif; e != nil {
		q.str("exif[make]", e.Make)
		q.str("exif[model]", e.Model)
		q.str("exif[exposure_time]", e.ExposureTime)
		q.str("exif[aperture_value]", e.Aperture)
		q.str("exif[focal_length]", e.FocalLength)
		q.int("exif[iso_speed_ratings]", e.ISO)
	}
	return q.pairs
}

// CollectionParameters create or edit a collection.
type CollectionParameters struct {
	Title       *string
	Description *string
	Private     *bool
}

func (p CollectionParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.str("title", p.Title)
	q.str("description", p.Description)
	q.bool("private", p.Private)
	return q.pairs
}

// CollectionPhotoParameters name the photo added to or removed from a
// collection.
type CollectionPhotoParameters struct {
	PhotoID string
}

func (p CollectionPhotoParameters) QueryPairs() []QueryPair {
	return []QueryPair{{Key: "photo_id", Value: p.PhotoID}}
}

// TopicListParameters page through topics.
type TopicListParameters struct {
	IDs     []string
	Page    *int
	PerPage *int
	OrderBy Order
}

func (p TopicListParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.list("ids", p.IDs)
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	q.enum("order_by", string(p.OrderBy))
	return q.pairs
}

// TopicPhotosParameters page through a topic's photos.
type TopicPhotosParameters struct {
	Page        *int
	PerPage     *int
	Orientation Orientation
	OrderBy     Order
}

func (p TopicPhotosParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.int("page", p.Page)
	q.int("per_page", p.PerPage)
	q.enum("orientation", string(p.Orientation))
	q.enum("order_by", string(p.OrderBy))
	return q.pairs
}

// ProfileParameters edit the current user's profile.
type ProfileParameters struct {
	Username          *string
	FirstName         *string
	LastName          *string
	Email             *string
	URL               *string
	Location          *string
	Bio               *string
	InstagramUsername *string
}

func (p ProfileParameters) QueryPairs() []QueryPair {
	var q queryBuilder
	q.str("username", p.Username)
	q.str("first_name", p.FirstName)
	q.str("last_name", p.LastName)
	q.str("email", p.Email)
	q.str("url", p.URL)
	q.str("location", p.Location)
	q.str("bio", p.Bio)
	q.str("instagram_username", p.InstagramUsername)
	return q.pairs
}

// AuthorizeParameters build the OAuth authorization URL.
type AuthorizeParameters struct {
	ClientID    string
	RedirectURI string
	Scopes      []Scope
	State       *string
}

func (p AuthorizeParameters) QueryPairs() []QueryPair {
	scopes := make([]string, len(p.Scopes))
	for i, s := range p.Scopes {
		scopes[i] = string(s)
	}
	var q queryBuilder
	q.add("client_id", p.ClientID)
	q.add("redirect_uri", p.RedirectURI)
	q.add("response_type", "code")
	q.add("scope", strings.Join(scopes, " "))
	q.str("state", p.State)
	return q.pairs
}

// TokenParameters exchange an authorization code for a user token.
type TokenParameters struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Code         string
}

func (p TokenParameters) QueryPairs() []QueryPair {
	return []QueryPair{
		{Key: "client_id", Value: p.ClientID},
		{Key: "client_secret", Value: p.ClientSecret},
		{Key: "redirect_uri", Value: p.RedirectURI},
		{Key: "code", Value: p.Code},
		{Key: "grant_type", Value: "authorization_code"},
	}
}

// noParameters is used by operations without query inputs.
type noParameters struct{}

func (noParameters) QueryPairs() []QueryPair { return nil }
