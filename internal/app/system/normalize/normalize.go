// Package normalize turns the wrapped URL strings users paste into the
// fetch form into plain https URLs, and validates the result. Use these
// helpers instead of scattered strings.Split and url.Parse calls so input
// handling stays consistent.
package normalize

import (
	"fmt"
	"net/url"
	"strings"
)

// WrappedURL converts an input like "https://abc://example.com/page" into
// "https://example.com/page": split on "://", take the last segment, and
// prepend a scheme. Unwrapped http URLs keep their scheme; everything else
// becomes https. Returns "" when no target remains after unwrapping.
func WrappedURL(s string) string {
	parts := strings.Split(s, "://")
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" {
		return ""
	}
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "http") {
		return "http://" + last
	}
	return "https://" + last
}

// Validate checks that u is a fetchable http(s) URL with a host. It returns
// the parsed URL so callers can inspect the host without reparsing.
func Validate(u string) (*url.URL, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", u, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("URL %q has no host", u)
	}
	return parsed, nil
}

// Input trims surrounding whitespace from raw form input.
func Input(s string) string {
	return strings.TrimSpace(s)
}
