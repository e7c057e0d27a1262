package utils

import (
	"net/url"
	"strings"
	"unicode"
)

// SanitizeText strips control characters from an inbound identifier and
// trims surrounding whitespace. Callback parameters go through this before
// they are used in outbound request URLs.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// AddQueryArg appends key=value to rawURL, preserving existing query
// parameters. Invalid URLs are returned unchanged.
func AddQueryArg(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
