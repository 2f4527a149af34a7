package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/splashkit/unsplash-cli/internal/api"
)

// Limits enforced by the API.
const (
	MinPerPage            = 1
	MaxPerPage            = api.MaxPerPage
	MaxRandomCount        = 30
	MaxStatisticsQuantity = 30
	MinStatisticsQuantity = 1
	MaxCollectionTitle    = 60
	MaxCollectionDesc     = 250
	MaxPhotoDescription   = 1000
	MaxBioLength          = 250
)

// Allowed enum values, in the order the API documents them.
var (
	Orientations   = []string{string(api.OrientationLandscape), string(api.OrientationPortrait), string(api.OrientationSquarish)}
	ContentFilters = []string{string(api.ContentFilterLow), string(api.ContentFilterHigh)}
	Resolutions    = []string{"days"}
	Colors         = []string{
		string(api.ColorBlackAndWhite), string(api.ColorBlack), string(api.ColorWhite),
		string(api.ColorYellow), string(api.ColorOrange), string(api.ColorRed),
		string(api.ColorPurple), string(api.ColorMagenta), string(api.ColorGreen),
		string(api.ColorTeal), string(api.ColorBlue),
	}
	PhotoOrders       = []string{string(api.OrderLatest), string(api.OrderOldest), string(api.OrderPopular)}
	UserPhotoOrders   = []string{string(api.OrderLatest), string(api.OrderOldest), string(api.OrderPopular), string(api.OrderViews), string(api.OrderDownloads)}
	SearchOrders      = []string{string(api.OrderRelevant), string(api.OrderLatest)}
	TopicOrders       = []string{string(api.OrderFeatured), string(api.OrderLatest), string(api.OrderOldest), string(api.OrderPosition)}
	TopicPhotoOrders  = []string{string(api.OrderLatest), string(api.OrderOldest), string(api.OrderPopular)}
	OutputModes       = []string{"text", "json", "jsonl"}
	scopeNamesAllowed = scopeNames()
)

func scopeNames() []string {
	names := make([]string, 0, len(api.AllScopes))
	for _, s := range api.AllScopes {
		names = append(names, string(s))
	}
	return names
}

// ValidateEnum checks value against allowed. An empty value means unset
// and is accepted. Matching is case-insensitive; the canonical spelling is
// returned.
func ValidateEnum(field, value string, allowed []string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a, nil
		}
	}
	return "", api.NewValidationError(field, value, allowed)
}

// ValidateRange checks that value lies in [lo, hi]. Zero means unset.
func ValidateRange(field string, value, lo, hi int) error {
	if value == 0 {
		return nil
	}
	if value < lo || value > hi {
		return api.NewStructuredErrorWithContext(api.ErrValidation,
			fmt.Sprintf("%s must be between %d and %d (got %d)", field, lo, hi, value),
			map[string]any{"field": field, "got": value, "min": lo, "max": hi})
	}
	return nil
}

// ValidatePage checks a page number. Zero means the first page.
func ValidatePage(page int) error {
	if page < 0 {
		return api.NewStructuredErrorWithContext(api.ErrValidation,
			fmt.Sprintf("page must be positive (got %d)", page),
			map[string]any{"field": "page", "got": page})
	}
	return nil
}

// ValidatePerPage checks a page size.
func ValidatePerPage(perPage int) error {
	return ValidateRange("per_page", perPage, MinPerPage, MaxPerPage)
}

// ValidateCount checks the number of random photos requested.
func ValidateCount(count int) error {
	return ValidateRange("count", count, 1, MaxRandomCount)
}

// ValidateQuantity checks the statistics window size.
func ValidateQuantity(quantity int) error {
	return ValidateRange("quantity", quantity, MinStatisticsQuantity, MaxStatisticsQuantity)
}

// ValidateLength checks that a free-text field does not exceed max runes.
func ValidateLength(field, value string, max int) error {
	length := utf8.RuneCountInString(value)
	if length > max {
		return api.NewStructuredErrorWithContext(api.ErrValidation,
			fmt.Sprintf("%s exceeds maximum length of %d characters (got %d)", field, max, length),
			map[string]any{"field": field, "max": max, "got": length})
	}
	return nil
}

// ValidateRequired rejects an empty value.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return api.NewStructuredErrorWithContext(api.ErrValidation,
			fmt.Sprintf("%s is required", field),
			map[string]any{"field": field})
	}
	return nil
}

// ValidateScopes checks every requested scope against the known list.
func ValidateScopes(scopes []api.Scope) error {
	for _, s := range scopes {
		if _, err := ValidateEnum("scope", string(s), scopeNamesAllowed); err != nil {
			return err
		}
	}
	return nil
}

// ParseCoordinate parses a latitude or longitude and checks its bounds.
func ParseCoordinate(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	limit := 180.0
	if field == "latitude" {
		limit = 90
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("invalid %s: must be between %g and %g", field, -limit, limit)
	}
	return v, nil
}
