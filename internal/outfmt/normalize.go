package outfmt

import (
	"encoding/json"
	"reflect"
)

// normalizeJSONOutput wraps top-level slices as {"items": [...]} so JSON
// output is always an object.
func normalizeJSONOutput(v any) any {
	if v == nil {
		return v
	}
	switch v.(type) {
	case []byte, json.RawMessage:
		return v
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return v
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		items := rv.Interface()
		// A nil slice would encode as null and break `.items[]`.
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			items = []any{}
		}
		return map[string]any{"items": items}
	default:
		return v
	}
}

// lines splits v into the records JSONL output writes one per line: the
// elements of a slice, or v itself.
func lines(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}
