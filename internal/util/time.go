// Package util contains small shared helpers for timestamp and content
// encoding handling used across the vCon packages. Kept internal so the
// public API surface stays limited to the domain packages.
package util

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts lists the accepted wire formats for vCon timestamps, in
// preference order. RFC 3339 (with or without fractional seconds) is the
// canonical form; the space-separated variant shows up in data produced by
// older generators.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a vCon timestamp string into a UTC time.Time.
func ParseTimestamp(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// FormatTimestamp renders a time in the canonical vCon wire format
// (RFC 3339, second precision, UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NowTimestamp returns the current time in the canonical wire format.
func NowTimestamp() string {
	return FormatTimestamp(time.Now())
}
