package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString handles identifiers the API sends either as strings or as
// numbers and stores them as strings. Older collections have numeric ids.
type FlexString string

func (fs *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*fs = FlexString(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		if f == float64(int64(f)) {
			*fs = FlexString(strconv.FormatInt(int64(f), 10))
		} else {
			*fs = FlexString(strconv.FormatFloat(f, 'f', -1, 64))
		}
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexString", data)
}

// String returns the string value
func (fs FlexString) String() string {
	return string(fs)
}

// FlexInt handles counters that may come as strings or integers.
type FlexInt int

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*fi = FlexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*fi = 0
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*fi = FlexInt(i)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexInt", data)
}

// PhotoURLs are the rendition URLs of a photo.
type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
	SmallS3 string `json:"small_s3,omitempty"`
}

// PhotoLinks are the API and web links of a photo.
type PhotoLinks struct {
	Self             string `json:"self"`
	HTML             string `json:"html"`
	Download         string `json:"download"`
	DownloadLocation string `json:"download_location"`
}

// Tag is a keyword attached to a photo or collection.
type Tag struct {
	Type  string `json:"type,omitempty"`
	Title string `json:"title"`
}

// Sponsorship marks a promoted photo.
type Sponsorship struct {
	ImpressionURLs []string `json:"impression_urls,omitempty"`
	Tagline        string   `json:"tagline,omitempty"`
	TaglineURL     string   `json:"tagline_url,omitempty"`
	Sponsor        *User    `json:"sponsor,omitempty"`
}

// Photo is the representation returned by listings and searches.
// Two photos are equal when their ids match.
type Photo struct {
	ID                     string       `json:"id"`
	Slug                   string       `json:"slug,omitempty"`
	CreatedAt              Timestamp    `json:"created_at"`
	UpdatedAt              *Timestamp   `json:"updated_at,omitempty"`
	PromotedAt             *Timestamp   `json:"promoted_at,omitempty"`
	Width                  int          `json:"width"`
	Height                 int          `json:"height"`
	Color                  *string      `json:"color,omitempty"`
	BlurHash               *string      `json:"blur_hash,omitempty"`
	Description            *string      `json:"description,omitempty"`
	AltDescription         *string      `json:"alt_description,omitempty"`
	URLs                   PhotoURLs    `json:"urls"`
	Links                  *PhotoLinks  `json:"links,omitempty"`
	Likes                  *int         `json:"likes,omitempty"`
	LikedByUser            *bool        `json:"liked_by_user,omitempty"`
	CurrentUserCollections []Collection `json:"current_user_collections,omitempty"`
	Sponsorship            *Sponsorship `json:"sponsorship,omitempty"`
	User                   User         `json:"user"`
	Tags                   []Tag        `json:"tags,omitempty"`
	Statistics             *Statistics  `json:"statistics,omitempty"`
}

func (p *Photo) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("Photo", data)
	if err != nil {
		return err
	}
	var out Photo
	out.readFields(f)
	if err := f.done(); err != nil {
		return err
	}
	*p = out
	return nil
}

// readFields is the single key table shared by Photo and FullPhoto.
func (p *Photo) readFields(f *fields) {
	f.required("id", &p.ID)
	f.required("created_at", &p.CreatedAt)
	f.required("width", &p.Width)
	f.required("height", &p.Height)
	f.required("urls", &p.URLs)
	f.required("user", &p.User)
	f.optional("slug", &p.Slug)
	f.optional("updated_at", &p.UpdatedAt)
	f.optional("promoted_at", &p.PromotedAt)
	f.optional("color", &p.Color)
	f.optional("blur_hash", &p.BlurHash)
	f.optional("description", &p.Description)
	f.optional("alt_description", &p.AltDescription)
	f.optional("links", &p.Links)
	f.optional("likes", &p.Likes)
	f.optional("liked_by_user", &p.LikedByUser)
	f.optional("current_user_collections", &p.CurrentUserCollections)
	f.optional("sponsorship", &p.Sponsorship)
	f.optional("tags", &p.Tags)
	f.optional("statistics", &p.Statistics)
}

// Equal reports whether p and other are the same photo.
func (p Photo) Equal(other Photo) bool {
	return p.ID == other.ID
}

// Exif is the camera metadata of a photo.
type Exif struct {
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Name         *string `json:"name,omitempty"`
	ExposureTime *string `json:"exposure_time,omitempty"`
	Aperture     *string `json:"aperture,omitempty"`
	FocalLength  *string `json:"focal_length,omitempty"`
	ISO          *int    `json:"iso,omitempty"`
}

func (e *Exif) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("Exif", data)
	if err != nil {
		return err
	}
	var out Exif
	f.optional("make", &out.Make)
	f.optional("model", &out.Model)
	f.optional("name", &out.Name)
	f.optional("exposure_time", &out.ExposureTime)
	f.optional("aperture", &out.Aperture)
	f.optional("focal_length", &out.FocalLength)
	f.optional("iso", &out.ISO)
	*e = out
	return nil
}

// Position is a latitude/longitude pair.
type Position struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Location is where a photo was taken.
type Location struct {
	Name     *string   `json:"name,omitempty"`
	City     *string   `json:"city,omitempty"`
	Country  *string   `json:"country,omitempty"`
	Position *Position `json:"position,omitempty"`
}

func (l *Location) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("Location", data)
	if err != nil {
		return err
	}
	var out Location
	f.optional("name", &out.Name)
	f.optional("city", &out.City)
	f.optional("country", &out.Country)
	f.optional("position", &out.Position)
	*l = out
	return nil
}

// RelatedCollections lists collections similar to a photo.
type RelatedCollections struct {
	Total   int          `json:"total"`
	Type    string       `json:"type,omitempty"`
	Results []Collection `json:"results"`
}

// FullPhoto is the single-photo representation. It carries every Photo
// field plus data only the photo endpoint returns.
type FullPhoto struct {
	Photo
	Exif               *Exif               `json:"exif,omitempty"`
	Location           *Location           `json:"location,omitempty"`
	Views              *int                `json:"views,omitempty"`
	Downloads          *int                `json:"downloads,omitempty"`
	RelatedCollections *RelatedCollections `json:"related_collections,omitempty"`
}

func (p *FullPhoto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("FullPhoto", data)
	if err != nil {
		return err
	}
	var out FullPhoto
	f.optional("exif", &out.Exif)
	f.optional("location", &out.Location)
	f.optional("views", &out.Views)
	f.optional("downloads", &out.Downloads)
	f.optional("related_collections", &out.RelatedCollections)
	out.Photo.readFields(f)
	if err := f.done(); err != nil {
		return err
	}
	*p = out
	return nil
}

// PreviewPhoto is the abbreviated photo embedded in collections and topics.
type PreviewPhoto struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
	BlurHash  *string    `json:"blur_hash,omitempty"`
	URLs      PhotoURLs  `json:"urls"`
}

// LikedPhoto is the cut-down photo carried by like and unlike responses.
// Only the id is guaranteed; in particular created_at is not sent.
type LikedPhoto struct {
	ID          string      `json:"id"`
	Width       *int        `json:"width,omitempty"`
	Height      *int        `json:"height,omitempty"`
	Color       *string     `json:"color,omitempty"`
	BlurHash    *string     `json:"blur_hash,omitempty"`
	Description *string     `json:"description,omitempty"`
	Likes       *int        `json:"likes,omitempty"`
	LikedByUser *bool       `json:"liked_by_user,omitempty"`
	URLs        *PhotoURLs  `json:"urls,omitempty"`
	Links       *PhotoLinks `json:"links,omitempty"`
	User        *User       `json:"user,omitempty"`
}

func (p *LikedPhoto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("LikedPhoto", data)
	if err != nil {
		return err
	}
	var out LikedPhoto
	f.required("id", &out.ID)
	f.optional("width", &out.Width)
	f.optional("height", &out.Height)
	f.optional("color", &out.Color)
	f.optional("blur_hash", &out.BlurHash)
	f.optional("description", &out.Description)
	f.optional("likes", &out.Likes)
	f.optional("liked_by_user", &out.LikedByUser)
	f.optional("urls", &out.URLs)
	f.optional("links", &out.Links)
	f.optional("user", &out.User)
	if err := f.done(); err != nil {
		return err
	}
	*p = out
	return nil
}

// UserLinks are the API and web links of a user.
type UserLinks struct {
	Self      string `json:"self"`
	HTML      string `json:"html"`
	Photos    string `json:"photos"`
	Likes     string `json:"likes"`
	Portfolio string `json:"portfolio"`
	Following string `json:"following,omitempty"`
	Followers string `json:"followers,omitempty"`
}

// ProfileImage holds the avatar renditions.
type ProfileImage struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// User is a photographer profile. Two users are equal when their ids match.
type User struct {
	ID                string        `json:"id"`
	Username          string        `json:"username"`
	Name              *string       `json:"name,omitempty"`
	FirstName         *string       `json:"first_name,omitempty"`
	LastName          *string       `json:"last_name,omitempty"`
	UpdatedAt         *Timestamp    `json:"updated_at,omitempty"`
	TwitterUsername   *string       `json:"twitter_username,omitempty"`
	InstagramUsername *string       `json:"instagram_username,omitempty"`
	PortfolioURL      *string       `json:"portfolio_url,omitempty"`
	Bio               *string       `json:"bio,omitempty"`
	Location          *string       `json:"location,omitempty"`
	Links             *UserLinks    `json:"links,omitempty"`
	ProfileImage      *ProfileImage `json:"profile_image,omitempty"`
	TotalCollections  *int          `json:"total_collections,omitempty"`
	TotalLikes        *int          `json:"total_likes,omitempty"`
	TotalPhotos       *int          `json:"total_photos,omitempty"`
	AcceptedTOS       *bool         `json:"accepted_tos,omitempty"`
	ForHire           *bool         `json:"for_hire,omitempty"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("User", data)
	if err != nil {
		return err
	}
	var out User
	out.readFields(f)
	if err := f.done(); err != nil {
		return err
	}
	*u = out
	return nil
}

func (u *User) readFields(f *fields) {
	f.required("id", &u.ID)
	f.required("username", &u.Username)
	f.optional("name", &u.Name)
	f.optional("first_name", &u.FirstName)
	f.optional("last_name", &u.LastName)
	f.optional("updated_at", &u.UpdatedAt)
	f.optional("twitter_username", &u.TwitterUsername)
	f.optional("instagram_username", &u.InstagramUsername)
	f.optional("portfolio_url", &u.PortfolioURL)
	f.optional("bio", &u.Bio)
	f.optional("location", &u.Location)
	f.optional("links", &u.Links)
	f.optional("profile_image", &u.ProfileImage)
	f.optional("total_collections", &u.TotalCollections)
	f.optional("total_likes", &u.TotalLikes)
	f.optional("total_photos", &u.TotalPhotos)
	f.optional("accepted_tos", &u.AcceptedTOS)
	f.optional("for_hire", &u.ForHire)
}

// Equal reports whether u and other are the same user.
func (u User) Equal(other User) bool {
	return u.ID == other.ID
}

// Badge is a profile badge such as "Unsplash+ contributor".
type Badge struct {
	Title   string `json:"title"`
	Primary bool   `json:"primary"`
	Slug    string `json:"slug"`
	Link    string `json:"link,omitempty"`
}

// FullUser is the profile returned by the user and current-user
// endpoints.
type FullUser struct {
	User
	FollowedByUser   *bool     `json:"followed_by_user,omitempty"`
	FollowersCount   *int      `json:"followers_count,omitempty"`
	FollowingCount   *int      `json:"following_count,omitempty"`
	Downloads        *int      `json:"downloads,omitempty"`
	Email            *string   `json:"email,omitempty"`
	UploadsRemaining *int      `json:"uploads_remaining,omitempty"`
	Badge            *Badge    `json:"badge,omitempty"`
	Tags             *UserTags `json:"tags,omitempty"`
}

// UserTags are the keywords attached to a profile: those the user chose
// and those derived from their photos.
type UserTags struct {
	Custom     []Tag `json:"custom,omitempty"`
	Aggregated []Tag `json:"aggregated,omitempty"`
}

func (u *FullUser) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("FullUser", data)
	if err != nil {
		return err
	}
	var out FullUser
	f.optional("followed_by_user", &out.FollowedByUser)
	f.optional("followers_count", &out.FollowersCount)
	f.optional("following_count", &out.FollowingCount)
	f.optional("downloads", &out.Downloads)
	f.optional("email", &out.Email)
	f.optional("uploads_remaining", &out.UploadsRemaining)
	f.optional("badge", &out.Badge)
	f.optional("tags", &out.Tags)
	out.User.readFields(f)
	if err := f.done(); err != nil {
		return err
	}
	*u = out
	return nil
}

// CollectionLinks are the API and web links of a collection.
type CollectionLinks struct {
	Self    string `json:"self"`
	HTML    string `json:"html"`
	Photos  string `json:"photos"`
	Related string `json:"related,omitempty"`
}

// Collection is a named, curated set of photos. Two collections are equal
// when their ids match.
type Collection struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description,omitempty"`
	PublishedAt     *Timestamp       `json:"published_at,omitempty"`
	LastCollectedAt *Timestamp       `json:"last_collected_at,omitempty"`
	UpdatedAt       *Timestamp       `json:"updated_at,omitempty"`
	Featured        *bool            `json:"featured,omitempty"`
	TotalPhotos     *int             `json:"total_photos,omitempty"`
	Private         *bool            `json:"private,omitempty"`
	ShareKey        *string          `json:"share_key,omitempty"`
	CoverPhoto      *Photo           `json:"cover_photo,omitempty"`
	PreviewPhotos   []PreviewPhoto   `json:"preview_photos,omitempty"`
	User            *User            `json:"user,omitempty"`
	Tags            []Tag            `json:"tags,omitempty"`
	Links           *CollectionLinks `json:"links,omitempty"`
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("Collection", data)
	if err != nil {
		return err
	}
	var out Collection
	var id FlexString
	f.required("id", &id)
	out.ID = id.String()
	f.required("title", &out.Title)
	f.optional("description", &out.Description)
	f.optional("published_at", &out.PublishedAt)
	f.optional("last_collected_at", &out.LastCollectedAt)
	f.optional("updated_at", &out.UpdatedAt)
	f.optional("featured", &out.Featured)
	f.optional("total_photos", &out.TotalPhotos)
	f.optional("private", &out.Private)
	f.optional("share_key", &out.ShareKey)
	f.optional("cover_photo", &out.CoverPhoto)
	f.optional("preview_photos", &out.PreviewPhotos)
	f.optional("user", &out.User)
	f.optional("tags", &out.Tags)
	f.optional("links", &out.Links)
	if err := f.done(); err != nil {
		return err
	}
	*c = out
	return nil
}

// Equal reports whether c and other are the same collection.
func (c Collection) Equal(other Collection) bool {
	return c.ID == other.ID
}

// TopicLinks are the API and web links of a topic.
type TopicLinks struct {
	Self   string `json:"self"`
	HTML   string `json:"html"`
	Photos string `json:"photos"`
}

// Topic is an editorial category photos can be submitted to.
type Topic struct {
	ID                   string         `json:"id"`
	Slug                 string         `json:"slug"`
	Title                string         `json:"title"`
	Description          *string        `json:"description,omitempty"`
	PublishedAt          *Timestamp     `json:"published_at,omitempty"`
	UpdatedAt            *Timestamp     `json:"updated_at,omitempty"`
	StartsAt             *Timestamp     `json:"starts_at,omitempty"`
	EndsAt               *Timestamp     `json:"ends_at,omitempty"`
	OnlySubmissionsAfter *Timestamp     `json:"only_submissions_after,omitempty"`
	Featured             *bool          `json:"featured,omitempty"`
	TotalPhotos          *int           `json:"total_photos,omitempty"`
	Status               *string        `json:"status,omitempty"`
	Visibility           *string        `json:"visibility,omitempty"`
	Owners               []User         `json:"owners,omitempty"`
	CoverPhoto           *Photo         `json:"cover_photo,omitempty"`
	PreviewPhotos        []PreviewPhoto `json:"preview_photos,omitempty"`
	Links                *TopicLinks    `json:"links,omitempty"`
}

func (t *Topic) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("Topic", data)
	if err != nil {
		return err
	}
	var out Topic
	f.required("id", &out.ID)
	f.required("slug", &out.Slug)
	f.required("title", &out.Title)
	f.optional("description", &out.Description)
	f.optional("published_at", &out.PublishedAt)
	f.optional("updated_at", &out.UpdatedAt)
	f.optional("starts_at", &out.StartsAt)
	f.optional("ends_at", &out.EndsAt)
	f.optional("only_submissions_after", &out.OnlySubmissionsAfter)
	f.optional("featured", &out.Featured)
	f.optional("total_photos", &out.TotalPhotos)
	f.optional("status", &out.Status)
	f.optional("visibility", &out.Visibility)
	f.optional("owners", &out.Owners)
	f.optional("cover_photo", &out.CoverPhoto)
	f.optional("preview_photos", &out.PreviewPhotos)
	f.optional("links", &out.Links)
	if err := f.done(); err != nil {
		return err
	}
	*t = out
	return nil
}

// StatisticsValue is one data point of a history.
type StatisticsValue struct {
	Date  Timestamp `json:"date"`
	Value int       `json:"value"`
}

// StatisticsHistory is the windowed history of a counter.
type StatisticsHistory struct {
	Change     int               `json:"change"`
	Average    *int              `json:"average,omitempty"`
	Resolution string            `json:"resolution"`
	Quantity   int               `json:"quantity"`
	Values     []StatisticsValue `json:"values"`
}

// StatisticsSeries is a counter total with its history.
type StatisticsSeries struct {
	Total      FlexInt            `json:"total"`
	Historical *StatisticsHistory `json:"historical,omitempty"`
}

// Statistics are the download, view and like counters of a photo or user.
type Statistics struct {
	ID        *string           `json:"id,omitempty"`
	Username  *string           `json:"username,omitempty"`
	Downloads *StatisticsSeries `json:"downloads,omitempty"`
	Views     *StatisticsSeries `json:"views,omitempty"`
	Likes     *StatisticsSeries `json:"likes,omitempty"`
}

func (s *Statistics) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("Statistics", data)
	if err != nil {
		return err
	}
	var out Statistics
	f.optional("id", &out.ID)
	f.optional("username", &out.Username)
	f.optional("downloads", &out.Downloads)
	f.optional("views", &out.Views)
	f.optional("likes", &out.Likes)
	*s = out
	return nil
}
