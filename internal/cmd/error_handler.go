package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/config"
)

// HandleError processes an error and returns a user-friendly message with suggestions
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	var apiErr *api.APIError
	var authErr *api.AuthError
	var structured *api.StructuredError
	var decodeErr *api.DecodeError

	switch {
	case errors.Is(err, config.ErrNotConfigured):
		msg.WriteString("No Unsplash credentials configured.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: unsplash auth login --access-key <key>\n")
		msg.WriteString("  - Or export UNSPLASH_ACCESS_KEY\n")

	case errors.As(err, &authErr):
		fmt.Fprintf(&msg, "Authentication failed: %s\n\n", authErr.Reason)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: unsplash auth login\n")
		msg.WriteString("  - Check the access and secret keys of your application\n")

	case errors.As(err, &apiErr):
		if isQuotaExhausted(err) {
			msg.WriteString("Rate limit exceeded.\n\n")
			msg.WriteString(suggestionsForStatusCode(429, apiErr.Body))
			break
		}
		fmt.Fprintf(&msg, "API error (HTTP %d): %s\n\n", apiErr.StatusCode, apiErr.Body)
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode, apiErr.Body))
		if apiErr.RequestID != "" {
			fmt.Fprintf(&msg, "\nRequest ID: %s\n", apiErr.RequestID)
		}

	case errors.As(err, &decodeErr):
		fmt.Fprintf(&msg, "Unexpected response: %s\n\n", decodeErr.Error())
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Retry with --debug to see which field failed\n")

	case errors.As(err, &structured):
		fmt.Fprintf(&msg, "Error: %s\n", structured.Message)
		if structured.Suggestion != "" {
			fmt.Fprintf(&msg, "\nSuggestion: %s\n", structured.Suggestion)
		}

	case api.IsCancelled(err):
		msg.WriteString("Request cancelled or timed out.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Increase --timeout\n")
		msg.WriteString("  - Check your network connection\n")

	case strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check UNSPLASH_API_URL if you override the API host\n")
		msg.WriteString("  - Check your network connection\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the API host spelling\n")
		msg.WriteString("  - Verify your DNS settings\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int, body string) string {
	var suggestions strings.Builder
	suggestions.WriteString("Suggestions:\n")

	switch code {
	case 400:
		suggestions.WriteString("  - Check your request parameters\n")
		suggestions.WriteString("  - Use --dry-run to see the request that would be sent\n")

	case 401:
		suggestions.WriteString("  - Your access key or user token may be invalid or revoked\n")
		suggestions.WriteString("  - Run: unsplash auth login\n")

	case 403:
		suggestions.WriteString("  - The user token lacks the scope this action needs\n")
		suggestions.WriteString("  - Run: unsplash auth login --browser --scopes <scopes>\n")

	case 404:
		suggestions.WriteString("  - The resource doesn't exist\n")
		suggestions.WriteString("  - Check the id, slug or username\n")

	case 422:
		suggestions.WriteString("  - Validation failed\n")
		if strings.Contains(body, "errors") {
			suggestions.WriteString("  - See the errors listed above\n")
		}

	case 429:
		suggestions.WriteString("  - The hourly request quota is used up\n")
		suggestions.WriteString("  - Run: unsplash ratelimit\n")

	case 500, 502, 503, 504:
		suggestions.WriteString("  - Server error - not your fault\n")
		suggestions.WriteString("  - Wait and retry\n")

	default:
		suggestions.WriteString("  - Use --debug for more details\n")
	}

	return suggestions.String()
}
