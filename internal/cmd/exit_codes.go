package cmd

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/pflag"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/config"
)

const (
	exitOK          = 0
	exitGeneric     = 1
	exitUsage       = 2
	exitAuth        = 3
	exitNotFound    = 4
	exitRateLimited = 5
	exitNetwork     = 6
	exitDecode      = 7
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	var handled *handledError
	if errors.As(err, &handled) {
		if handled.exitCode != 0 {
			return handled.exitCode
		}
		err = handled.err
	}

	if code := exitCodeFromStructured(err); code != 0 {
		return code
	}
	if isUsageError(err) {
		return exitUsage
	}
	if isNetworkError(err) {
		return exitNetwork
	}
	return exitGeneric
}

// structuredError classifies err for machine-readable output. Errors the
// API package does not know about, such as missing configuration, are
// mapped here.
func structuredError(err error) *api.StructuredError {
	if err == nil {
		return nil
	}
	if errors.Is(err, config.ErrNotConfigured) {
		return api.NewStructuredError(api.ErrUnauthorized, err.Error())
	}
	if errors.Is(err, config.ErrProfileNotFound) {
		return api.NewStructuredError(api.ErrNotFound, err.Error())
	}
	structured := api.StructuredErrorFromError(err)
	// The API answers 403 "Rate Limit Exceeded" once the hourly quota is
	// spent.
	if structured.Code == api.ErrForbidden && isQuotaExhausted(err) {
		structured = api.NewStructuredErrorWithContext(api.ErrRateLimited, structured.Message, structured.Context)
	}
	return structured
}

func isQuotaExhausted(err error) bool {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Body), "rate limit")
}

func exitCodeFromStructured(err error) int {
	structured := structuredError(err)
	if structured == nil {
		return 0
	}
	switch structured.Code {
	case api.ErrUnauthorized, api.ErrForbidden:
		return exitAuth
	case api.ErrNotFound:
		return exitNotFound
	case api.ErrRateLimited:
		return exitRateLimited
	case api.ErrTimeout, api.ErrNetwork, api.ErrCancelled:
		return exitNetwork
	case api.ErrDecode, api.ErrUnknownResponse:
		return exitDecode
	case api.ErrBadRequest, api.ErrValidation:
		return exitUsage
	case api.ErrServerError, api.ErrConflict:
		return exitGeneric
	default:
		return 0
	}
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "i/o timeout")
}

func isUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	indicators := []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"requires at least",
		"requires exactly",
		"accepts at most",
		"accepts between",
		"arg(s), received",
		"required flag",
		"invalid argument",
		"must be",
		"is required",
		"requires --output",
	}
	for _, indicator := range indicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
