// Package icaltime converts iCalendar DATE and DATE-TIME property values to and
// from reconcile.TimeValue. It is shared by the source feed parser and the
// CalDAV record codec so both sides classify values the same way.
package icaltime

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"calendar-sync/core/reconcile"
)

const (
	layoutDate     = "20060102"
	layoutDateTime = "20060102T150405"
	layoutUTC      = "20060102T150405Z"
)

// ErrEmptyValue is returned when a property has no value.
var ErrEmptyValue = errors.New("empty date-time value")

// Parse parses a DTSTART/DTEND style value.
//
// VALUE=DATE or an 8 character value without a time part yields a date-only value.
// A trailing Z yields a UTC instant and a known TZID a zoned instant. Anything else,
// including an unknown TZID, yields a floating value.
func Parse(value string, params map[string][]string) (reconcile.TimeValue, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return reconcile.TimeValue{}, ErrEmptyValue
	}

	if isDate(value, params) {
		t, err := time.Parse(layoutDate, value)
		if err != nil {
			return reconcile.TimeValue{}, fmt.Errorf("parse date %q: %w", value, err)
		}
		return reconcile.TimeValue{Time: t, DateOnly: true}, nil
	}

	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse(layoutUTC, value)
		if err != nil {
			return reconcile.TimeValue{}, fmt.Errorf("parse utc date-time %q: %w", value, err)
		}
		return reconcile.TimeValue{Time: t}, nil
	}

	if tzid := param(params, "TZID"); tzid != "" {
		if loc, err := time.LoadLocation(tzid); err == nil {
			t, err := time.ParseInLocation(layoutDateTime, value, loc)
			if err != nil {
				return reconcile.TimeValue{}, fmt.Errorf("parse date-time %q: %w", value, err)
			}
			return reconcile.TimeValue{Time: t}, nil
		}
	}

	t, err := time.Parse(layoutDateTime, value)
	if err != nil {
		return reconcile.TimeValue{}, fmt.Errorf("parse floating date-time %q: %w", value, err)
	}
	return reconcile.TimeValue{Time: t, Floating: true}, nil
}

// Format renders v as a property value and the parameters it needs.
// Zoned values are written in UTC so the object needs no VTIMEZONE.
func Format(v reconcile.TimeValue) (string, map[string]string) {
	switch {
	case v.DateOnly:
		return v.Time.Format(layoutDate), map[string]string{"VALUE": "DATE"}
	case v.Floating:
		return v.Time.Format(layoutDateTime), nil
	default:
		return v.Time.UTC().Format(layoutUTC), nil
	}
}

func isDate(value string, params map[string][]string) bool {
	if strings.EqualFold(param(params, "VALUE"), "DATE") {
		return true
	}
	return len(value) == len(layoutDate) && !strings.Contains(value, "T")
}

func param(params map[string][]string, name string) string {
	for k, vs := range params {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return strings.Trim(vs[0], `"`)
		}
	}
	return ""
}
