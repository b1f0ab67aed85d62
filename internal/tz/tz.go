// Package tz converts absolute instants to calendar-local components
// for a configured timezone, and parses the heterogeneous due-date
// strings tasks carry.
package tz

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimezone is the fallback used whenever a configured zone id
// does not resolve.
const DefaultTimezone = "America/Mexico_City"

// ResolveTimezone validates an IANA zone id by loading it. Invalid ids
// (including the empty string) fall back to the default zone; this
// never fails.
func ResolveTimezone(candidate string) *time.Location {
	if candidate != "" {
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Parts are the zoned calendar components of an instant. Weekday uses
// 0=Sunday through 6=Saturday. Derived, never persisted.
type Parts struct {
	Year    int
	Month   int // 1-12
	Day     int // 1-31
	Weekday int // 0=Sun .. 6=Sat
	Hour    int
	Minute  int
	Second  int
}

// PartsAt returns the zoned components of instantMs in loc.
func PartsAt(instantMs int64, loc *time.Location) Parts {
	t := time.UnixMilli(instantMs).In(loc)
	return Parts{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: int(t.Weekday()),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// SameDate reports whether two parts fall on the same calendar date,
// independent of time of day.
func (p Parts) SameDate(o Parts) bool {
	return p.Year == o.Year && p.Month == o.Month && p.Day == o.Day
}

// compactUTC is the store's native due format: literal UTC wall clock,
// no zone conversion.
const compactUTC = "20060102T150405Z"

// dueLayouts is the ladder of general layouts tried after the compact
// form. RFC3339 first since synced calendars emit it.
var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// ParseDueUTC parses a raw due string into an absolute instant in
// milliseconds. Returns ok=false on failure; callers treat that as
// "not due" rather than erroring.
func ParseDueUTC(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if t, err := time.ParseInLocation(compactUTC, raw, time.UTC); err == nil {
		return t.UnixMilli(), true
	}

	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UnixMilli(), true
		}
	}

	return 0, false
}

// FormatZoned renders an instant as "YYYY-MM-DD HH:MM (zone)" for
// human-readable notification bodies.
func FormatZoned(instantMs int64, loc *time.Location) string {
	t := time.UnixMilli(instantMs).In(loc)
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02 15:04"), loc.String())
}
