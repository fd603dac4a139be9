package domain

import (
	"strings"
	"time"
)

// approachTimeLayouts lists the resolutions the cd field is known to carry,
// most specific first. Months are three-letter English abbreviations.
// The numeric-month layouts accept this package's own output form, so
// parse(format(t)) round-trips.
var approachTimeLayouts = []string{
	"2006-Jan-02 15:04:05",
	"2006-Jan-02 15:04",
	"2006-Jan-02 15",
	"2006-Jan-02",
	"2006-01-02 15:04",
	"2006-01-02",
}

// approachTimeFormat is the canonical human-readable output form. The feed
// has no sub-minute precision, so seconds are dropped.
const approachTimeFormat = "2006-01-02 15:04"

// ParseApproachTime converts a cd-format string ("1900-Jan-01 12:00") into a
// UTC instant. An empty string returns the zero time with no error; the
// caller decides whether an unset time is acceptable. A non-empty string
// matching no known layout returns a *FormatError.
func ParseApproachTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range approachTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &FormatError{Raw: raw}
}

// FormatApproachTime renders an instant as "YYYY-MM-DD HH:MM" in UTC.
// Round-tripping through ParseApproachTime is lossless at minute resolution.
func FormatApproachTime(t time.Time) string {
	return t.UTC().Format(approachTimeFormat)
}
