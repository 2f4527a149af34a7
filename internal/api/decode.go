package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"
)

var errMissingField = errors.New("missing required field")

// Decode parses a success payload into T. Any failure is a *DecodeError.
func Decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		var zero T
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return zero, err
		}
		return zero, &DecodeError{Type: typeName(v), Err: err}
	}
	return v, nil
}

func typeName(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%T", v), "api.", "")
}

// fields decodes one JSON object key by key. Required keys record the
// first failure; optional keys that are missing or malformed are left at
// their zero value.
type fields struct {
	typeName string
	raw      map[string]json.RawMessage
	err      error
}

func decodeFields(typeName string, data []byte) (*fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Type: typeName, Err: err}
	}
	if raw == nil {
		return nil, &DecodeError{Type: typeName, Err: errors.New("expected object, got null")}
	}
	return &fields{typeName: typeName, raw: raw}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (f *fields) required(key string, dst any) {
	if f.err != nil {
		return
	}
	raw, ok := f.raw[key]
	if !ok || isNull(raw) {
		f.err = &DecodeError{Type: f.typeName, Field: key, Err: errMissingField}
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		f.err = &DecodeError{Type: f.typeName, Field: key, Err: err}
	}
}

func (f *fields) optional(key string, dst any) {
	raw, ok := f.raw[key]
	if !ok || isNull(raw) {
		return
	}
	target := reflect.New(reflect.TypeOf(dst).Elem())
	if err := json.Unmarshal(raw, target.Interface()); err != nil {
		slog.Debug("ignoring malformed optional field", "type", f.typeName, "field", key, "error", err)
		return
	}
	reflect.ValueOf(dst).Elem().Set(target.Elem())
}

func (f *fields) done() error {
	return f.err
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is an ISO-8601 date as sent by the API.
type Timestamp struct {
	time.Time
}

// ParseTimestamp accepts the ISO-8601 shapes the API emits: full RFC 3339,
// offset without a colon, no offset at all, and bare dates.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid ISO-8601 time %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}
