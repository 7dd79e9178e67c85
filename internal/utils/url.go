package utils

import (
	"fmt"
	"net/url"
)

// ParseSecureURL accepts only absolute https URLs with a host. Release feeds
// and artifact links are followed without authentication, so plain http is
// never allowed.
func ParseSecureURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL rejected: %q", parsed.Redacted())
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("URL has no host: %q", raw)
	}
	return parsed, nil
}
