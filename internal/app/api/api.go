// Package api holds the recognition backend integrations. Each
// subpackage wraps one vendor API and registers itself with the
// recognition registry from init(); importing a subpackage for side
// effects is what puts its provider in the catalog.
package api

import (
	"fmt"
	"net/http"
	"time"
)

// StatusError converts a non-2xx vendor response into an error whose text
// carries the classification keywords the orchestrator sniffs for.
func StatusError(provider string, status int, body string) error {
	if len(body) > 200 {
		body = body[:200]
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s rejected the API key (status %d): %s", provider, status, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s quota exceeded (status %d): %s", provider, status, body)
	default:
		return fmt.Errorf("%s request failed (status %d): %s", provider, status, body)
	}
}

// TransportError wraps a failed HTTP round trip so its text classifies as
// a network failure.
func TransportError(provider string, err error) error {
	return fmt.Errorf("%s network error: %w", provider, err)
}

// StringSetting reads an optional string from a provider tuning block.
func StringSetting(settings map[string]interface{}, key, fallback string) string {
	if settings != nil {
		if v, ok := settings[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

// TimeoutSetting reads an optional timeout (seconds) from a provider
// tuning block.
func TimeoutSetting(settings map[string]interface{}, fallback time.Duration) time.Duration {
	if settings != nil {
		if v, ok := settings["timeout_sec"].(float64); ok && v > 0 {
			return time.Duration(v * float64(time.Second))
		}
		if v, ok := settings["timeout_sec"].(int); ok && v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return fallback
}
