package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// APIError is returned when the server answers with a status outside the
// success table.
type APIError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// TransportError wraps a failure reported by the network layer. No status
// code is trusted when one of these is returned.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnknownResponseError is returned when the transport produced neither a
// usable response nor an error.
type UnknownResponseError struct {
	Method string
	URL    string
}

func (e *UnknownResponseError) Error() string {
	return fmt.Sprintf("%s %s: transport returned no status, body or error", e.Method, e.URL)
}

// DecodeError reports a success payload that did not match the expected
// shape.
type DecodeError struct {
	Type  string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s: field %q: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AuthError means the client has no usable credentials for the call.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Reason)
}

// IsAuthError checks if the error is an authentication error.
func IsAuthError(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// IsTransportError checks if the error came from the network layer.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsCancelled reports whether the call ended because its context was
// cancelled or its deadline passed.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsDecodeError checks if the error is a decode failure.
func IsDecodeError(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// IsUnknownResponseError checks if the transport returned nothing usable.
func IsUnknownResponseError(err error) bool {
	var e *UnknownResponseError
	return errors.As(err, &e)
}

// IsServerFailure checks if the error carries a non-success status.
func IsServerFailure(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFoundError checks if the error indicates a resource was not found.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404 ||
			strings.Contains(strings.ToLower(apiErr.Body), "not found")
	}
	return false
}

// IsRateLimitError checks if the server rejected the call for exceeding
// the hourly quota.
func IsRateLimitError(err error) bool {
	return StatusCode(err) == 429
}
