// Package filter runs jq expressions over decoded JSON values.
package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/itchyny/gojq"
)

// NormalizeExpression fixes shell-escaped operators in jq expressions.
// Zsh escapes ! to \! even in single quotes, breaking operators like !=.
func NormalizeExpression(expr string) string {
	return strings.ReplaceAll(expr, `\!`, `!`)
}

// Compile parses and compiles expression. $ENV exposes UNSPLASH_* variables
// only, so filters cannot leak other secrets from the environment.
func Compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(NormalizeExpression(expression))
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	code, err := gojq.Compile(query, gojq.WithEnvironLoader(unsplashEnviron))
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return code, nil
}

func unsplashEnviron() []string {
	var out []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "UNSPLASH_") && !strings.HasPrefix(kv, "UNSPLASH_SECRET_KEY=") && !strings.HasPrefix(kv, "UNSPLASH_ACCESS_TOKEN=") {
			out = append(out, kv)
		}
	}
	return out
}

// Apply applies a jq expression to data. A single result is returned as
// is; several results are returned as a slice.
func Apply(data any, expression string) (any, error) {
	return ApplyContext(context.Background(), data, expression)
}

// ApplyContext is Apply with cancellation.
func ApplyContext(ctx context.Context, data any, expression string) (any, error) {
	if expression == "" {
		return data, nil
	}
	code, err := Compile(expression)
	if err != nil {
		return nil, err
	}

	results, err := run(ctx, code, data)
	if err != nil {
		if items, ok := itemsFallbackData(data, expression, err); ok {
			if fallback, fallbackErr := run(ctx, code, items); fallbackErr == nil {
				results, err = fallback, nil
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return collapse(results), nil
}

// Stream calls emit for every result of expression instead of collecting
// them.
func Stream(ctx context.Context, data any, expression string, emit func(any) error) error {
	code, err := Compile(expression)
	if err != nil {
		return err
	}
	return streamCode(ctx, code, data, emit)
}

func run(ctx context.Context, code *gojq.Code, data any) ([]any, error) {
	var results []any
	err := streamCode(ctx, code, data, func(v any) error {
		results = append(results, v)
		return nil
	})
	return results, err
}

func streamCode(ctx context.Context, code *gojq.Code, data any, emit func(any) error) error {
	iter := code.RunWithContext(ctx, data)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := v.(error); ok {
			return fmt.Errorf("filter error: %w", err)
		}
		if err := emit(v); err != nil {
			return err
		}
	}
}

func collapse(results []any) any {
	if len(results) == 1 {
		return results[0]
	}
	return results
}

// itemsFallbackData lets `.[]` style filters run against the array inside
// an {"items": [...]} or {"results": [...]} envelope.
func itemsFallbackData(data any, expression string, runErr error) (any, bool) {
	if runErr == nil || !looksLikeRootArrayQuery(expression) {
		return nil, false
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"items", "results"} {
		if items, ok := m[key].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

func looksLikeRootArrayQuery(expression string) bool {
	expr := strings.TrimSpace(expression)
	return strings.HasPrefix(expr, ".[]") || strings.HasPrefix(expr, "[.[]") || strings.HasPrefix(expr, "(.[]")
}

// ApplyFromJSON applies a jq filter to JSON bytes and returns the result
// as a Go value.
func ApplyFromJSON(jsonData []byte, expression string) (any, error) {
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return Apply(data, expression)
}

// ApplyToJSON applies filter to JSON bytes and returns filtered JSON bytes (pretty-printed).
func ApplyToJSON(jsonData []byte, expression string) ([]byte, error) {
	if expression == "" {
		return jsonData, nil
	}
	result, err := ApplyFromJSON(jsonData, expression)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(result, "", "  ")
}
