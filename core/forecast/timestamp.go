package forecast

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted by ParseTimestamp, tried in order. Layouts without a zone
// are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ParseTimestamp parses the last known timestamp of a forecast request. The
// result carries a fixed zone so that hourly steps never follow daylight
// saving rules of the host location.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: last_timestamp is required", ErrInvalidInput)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fixedZone(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse timestamp %q", ErrInvalidInput, s)
}

func fixedZone(t time.Time) time.Time {
	_, off := t.Zone()
	if off == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", off))
}

// FormatTimestamp renders t the way the API returns it: a plain date-time
// for zero-offset instants, RFC 3339 with the offset otherwise.
func FormatTimestamp(t time.Time) string {
	if _, off := t.Zone(); off == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format(time.RFC3339)
}
