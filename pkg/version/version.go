// Package version provides the Alpaca API version and helpers for its URL path segment.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// APIVersion is the Alpaca API version implemented by this library.
// Negotiation is not supported; every request uses this version.
const APIVersion uint32 = 1

// Library is the release of this client library, reported in the User-Agent header.
const Library = "0.3.0"

// PathSegment returns the URL path segment for an API version: "v1".
func PathSegment(v uint32) string {
	return fmt.Sprintf("v%d", v)
}

// ParsePathSegment extracts the API version from a "vN" path segment.
func ParsePathSegment(s string) (uint32, error) {
	if !strings.HasPrefix(s, "v") {
		return 0, fmt.Errorf("not an API version segment: %q", s)
	}

	suffix := s[1:]
	if suffix == "" {
		return 0, fmt.Errorf("empty API version in segment: %q", s)
	}

	v, err := strconv.ParseUint(suffix, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid API version in segment %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("API version must be positive: %q", s)
	}

	return uint32(v), nil
}

// UserAgent returns the User-Agent header value sent by the HTTP transport.
func UserAgent() string {
	return "alpaca-go/" + Library
}
