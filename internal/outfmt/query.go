package outfmt

import (
	"context"
	"encoding/json"
	"io"

	"github.com/splashkit/unsplash-cli/internal/filter"
)

type queryKey struct{}

// WithQuery adds a jq query to the context
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// GetQuery retrieves the jq query from context
func GetQuery(ctx context.Context) string {
	if q, ok := ctx.Value(queryKey{}).(string); ok {
		return q
	}
	return ""
}

// toJSONValue round-trips v through encoding/json so jq sees the same
// shape the JSON writer would print.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyQuery applies a jq query to structured data and returns the filtered value.
func ApplyQuery(ctx context.Context, v any, query string) (any, error) {
	v = normalizeJSONOutput(v)
	if query == "" {
		return v, nil
	}
	data, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}
	return filter.ApplyContext(ctx, data, query)
}

// WriteJSONFiltered writes pretty JSON with optional jq filtering.
func WriteJSONFiltered(ctx context.Context, w io.Writer, v any, query string) error {
	result, err := ApplyQuery(ctx, v, query)
	if err != nil {
		return err
	}
	return WriteJSON(w, result)
}

// WriteJSONLFiltered writes one JSON document per line. Without a query a
// slice becomes one line per element; with a query every jq result becomes
// a line.
func WriteJSONLFiltered(ctx context.Context, w io.Writer, v any, query string) error {
	if query == "" {
		for _, item := range lines(v) {
			if err := WriteJSONLine(w, item); err != nil {
				return err
			}
		}
		return nil
	}
	data, err := toJSONValue(v)
	if err != nil {
		return err
	}
	return filter.Stream(ctx, data, query, func(result any) error {
		return WriteJSONLine(w, result)
	})
}
