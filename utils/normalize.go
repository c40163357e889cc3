package utils

import (
	"net/url"
	"strings"
)

// NormalizeURL prepares a raw user-supplied address for a field-data lookup.
// Scheme-relative inputs ("//host/path") and bare hosts gain https; anything
// already carrying "://" passes through unchanged. The result must parse as
// an absolute http or https URL with a non-empty host.
func NormalizeURL(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", ErrEmptyURL
	}

	switch {
	case strings.HasPrefix(s, "//"):
		s = "https:" + s
	case !strings.Contains(s, "://"):
		s = "https://" + s
	}

	parsedURL, err := url.ParseRequestURI(s)
	if err != nil {
		return "", ErrInvalidURL
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", ErrInvalidScheme
	}

	if parsedURL.Host == "" {
		return "", ErrEmptyHost
	}

	return s, nil
}
