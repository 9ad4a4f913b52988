package utils

import (
	"strings"
	"time"
)

const (
	layoutDateTime = "2006-01-02 15:04"
	layoutLocal    = "2006-01-02T15:04"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// localLayouts are tried in order after RFC 3339; they carry no offset and
// are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	layoutLocal,
	layoutDateTime,
}

// ParseDeparture accepts RFC 3339 timestamps as well as ISO-8601 local
// date-times ("YYYY-MM-DDTHH:MM[:SS[.fff]]") and "YYYY-MM-DD HH:MM", the
// local forms read in loc.
func ParseDeparture(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t.UTC(), nil
	}
	for _, layout := range localLayouts {
		if lt, lerr := time.ParseInLocation(layout, s, loc); lerr == nil {
			return lt.UTC(), nil
		}
	}
	return time.Time{}, err
}

// FormatDateTime formats t as "YYYY-MM-DD HH:MM" in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(layoutDateTime)
}
