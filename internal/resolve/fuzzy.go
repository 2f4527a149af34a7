// Package resolve matches user input against named resources, such as
// topic titles, with exact lookups first and fuzzy matching second.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Named represents a resource addressable by id, slug or display name.
type Named struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Match is a fuzzy match result with score.
type Match struct {
	Named
	Score int
}

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrEmptyItems = errors.New("no items to match against")
)

// NoMatchError is returned when nothing resembles the query.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match found for %q", e.Query)
}

// AmbiguousError indicates multiple candidates matched equally well.
// Matches are sorted best-first and capped.
type AmbiguousError struct {
	Query   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous match for %q", e.Query)
	if len(e.Matches) > 0 {
		b.WriteString(", candidates:")
		for _, m := range e.Matches {
			_, _ = fmt.Fprintf(&b, "\n  %s: %s", m.Slug, m.Name)
		}
	}
	return b.String()
}

type namedSourceLower []Named

func (s namedSourceLower) String(i int) string { return strings.ToLower(s[i].Name) }
func (s namedSourceLower) Len() int            { return len(s) }

// FuzzyMatch finds the best matching item.
//
// An exact id, slug or case-insensitive name wins outright. Otherwise the
// name is matched fuzzily, and a tie between the two best scores is an
// *AmbiguousError.
func FuzzyMatch(query string, items []Named) (Named, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Named{}, ErrEmptyQuery
	}
	if len(items) == 0 {
		return Named{}, ErrEmptyItems
	}

	for _, item := range items {
		if item.ID == query || strings.EqualFold(item.Slug, query) || strings.EqualFold(item.Name, query) {
			return item, nil
		}
	}

	results := fuzzy.FindFrom(strings.ToLower(query), namedSourceLower(items))
	if len(results) == 0 {
		return Named{}, &NoMatchError{Query: query}
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		return Named{}, &AmbiguousError{
			Query:   query,
			Matches: buildMatches(items, results, 5),
		}
	}
	return items[results[0].Index], nil
}

// FuzzyMatchAll returns up to limit matches ranked by score (best first).
func FuzzyMatchAll(query string, items []Named, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 || limit <= 0 {
		return nil
	}

	results := fuzzy.FindFrom(strings.ToLower(query), namedSourceLower(items))
	return buildMatches(items, results, limit)
}

func buildMatches(items []Named, results fuzzy.Matches, limit int) []Match {
	if len(results) == 0 || limit <= 0 {
		return nil
	}
	if len(results) > limit {
		results = results[:limit]
	}
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Named: items[r.Index], Score: r.Score}
	}
	return matches
}
