package resolve_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/splashkit/unsplash-cli/internal/resolve"
)

var topics = []resolve.Named{
	{ID: "bo8jQKTaE0Y", Slug: "wallpapers", Name: "Wallpapers"},
	{ID: "6sMVjTLSkeQ", Slug: "nature", Name: "Nature"},
	{ID: "iUIsnVtjB0Y", Slug: "textures-patterns", Name: "Textures & Patterns"},
	{ID: "rnSKDHwwYUk", Slug: "architecture-interior", Name: "Architecture & Interiors"},
}

func TestFuzzyMatch_ExactHits(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"6sMVjTLSkeQ", "nature"},
		{"textures-patterns", "textures-patterns"},
		{"WALLPAPERS", "wallpapers"},
		{"Architecture & Interiors", "architecture-interior"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := resolve.FuzzyMatch(tt.query, topics)
			if err != nil {
				t.Fatal(err)
			}
			if got.Slug != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.Slug)
			}
		})
	}
}

func TestFuzzyMatch_PartialHit(t *testing.T) {
	got, err := resolve.FuzzyMatch("archi", topics)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "rnSKDHwwYUk" {
		t.Fatalf("expected architecture, got %+v", got)
	}
}

func TestFuzzyMatch_NoMatch(t *testing.T) {
	_, err := resolve.FuzzyMatch("zzzz", topics)
	var nm *resolve.NoMatchError
	if !errors.As(err, &nm) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	if nm.Query != "zzzz" {
		t.Fatalf("unexpected query %q", nm.Query)
	}
}

func TestFuzzyMatch_Ambiguous(t *testing.T) {
	items := []resolve.Named{
		{ID: "1", Slug: "travel-us", Name: "Travel US"},
		{ID: "2", Slug: "travel-eu", Name: "Travel EU"},
	}
	_, err := resolve.FuzzyMatch("trav", items)
	var ae *resolve.AmbiguousError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AmbiguousError, got %T: %v", err, err)
	}
	if len(ae.Matches) != 2 {
		t.Fatalf("expected two candidates: %+v", ae)
	}
}

func TestFuzzyMatch_PrefersExactOverFuzzy(t *testing.T) {
	items := []resolve.Named{
		{ID: "2", Slug: "film-photography", Name: "Film Photography"},
		{ID: "1", Slug: "film", Name: "Film"},
	}
	got, err := resolve.FuzzyMatch("film", items)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "1" {
		t.Fatalf("expected exact match, got %+v", got)
	}
}

func TestFuzzyMatch_EmptyInputs(t *testing.T) {
	if _, err := resolve.FuzzyMatch("  ", topics); !errors.Is(err, resolve.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if _, err := resolve.FuzzyMatch("nature", nil); !errors.Is(err, resolve.ErrEmptyItems) {
		t.Fatalf("expected ErrEmptyItems, got %v", err)
	}
}

func TestFuzzyMatchAll_ReturnsRanked(t *testing.T) {
	matches := resolve.FuzzyMatchAll("t", topics, 2)
	if len(matches) != 2 {
		t.Fatalf("expected the limit to apply, got %d", len(matches))
	}
	if matches[0].Score < matches[1].Score {
		t.Fatalf("matches should be sorted best first: %+v", matches)
	}
	if resolve.FuzzyMatchAll("", topics, 5) != nil {
		t.Fatal("empty query should return nil")
	}
}

func TestAmbiguousErrorString(t *testing.T) {
	err := &resolve.AmbiguousError{
		Query: "travel",
		Matches: []resolve.Match{
			{Named: resolve.Named{Slug: "travel-us", Name: "Travel US"}},
			{Named: resolve.Named{Slug: "travel-eu", Name: "Travel EU"}},
		},
	}

	msg := err.Error()
	if !strings.Contains(msg, `ambiguous match for "travel"`) {
		t.Fatalf("missing query in error message: %q", msg)
	}
	if !strings.Contains(msg, "travel-us: Travel US") || !strings.Contains(msg, "travel-eu: Travel EU") {
		t.Fatalf("missing candidates in error message: %q", msg)
	}
}
