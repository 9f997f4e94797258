package reconcile

import "time"

// Normalizer turns TimeValues into comparable instants.
type Normalizer struct {
	// Location is used for date-only and floating values. Nil means UTC.
	Location *time.Location
}

func (n Normalizer) location() *time.Location {
	if n.Location == nil {
		return time.UTC
	}
	return n.Location
}

// Instant returns the instant denoted by v:
//   - date-only values become local midnight of that day
//   - floating values are localized into the configured zone
//   - zoned values pass through unchanged
func (n Normalizer) Instant(v TimeValue) time.Time {
	switch {
	case v.DateOnly:
		y, m, d := v.Time.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, n.location())
	case v.Floating:
		y, m, d := v.Time.Date()
		return time.Date(y, m, d, v.Time.Hour(), v.Time.Minute(), v.Time.Second(), v.Time.Nanosecond(), n.location())
	default:
		return v.Time
	}
}

// Span returns the normalized [start, end] interval of a source event.
// A missing end collapses the interval to its start.
func (n Normalizer) Span(ev SourceEvent) (start, end time.Time) {
	start = n.Instant(ev.Start)
	end = start
	if ev.End != nil && !ev.End.IsZero() {
		end = n.Instant(*ev.End)
	}
	return start, end
}

// InWindow reports whether the event overlaps [windowStart, windowEnd].
func (n Normalizer) InWindow(ev SourceEvent, windowStart, windowEnd time.Time) bool {
	start, end := n.Span(ev)
	return Overlaps(start, end, windowStart, windowEnd)
}

// Overlaps reports whether [start, end] and [windowStart, windowEnd] intersect.
// Bounds are inclusive and partial overlap counts.
func Overlaps(start, end, windowStart, windowEnd time.Time) bool {
	if end.Before(windowStart) {
		return false
	}
	if windowEnd.Before(start) {
		return false
	}
	return true
}
