package ics

import (
	"bytes"
	"fmt"

	"calendar-sync/core/icaltime"
	"calendar-sync/core/reconcile"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// ParseEvents parses an iCalendar payload into source events in document order.
// A payload that is not a calendar wraps reconcile.ErrSourceMalformed.
// Individual VEVENTs that cannot be read are logged and skipped.
func ParseEvents(body []byte, logger *zap.Logger) ([]reconcile.SourceEvent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", reconcile.ErrSourceMalformed)
	}
	if !bytes.Contains(body, []byte("BEGIN:VCALENDAR")) {
		return nil, fmt.Errorf("%w: payload is not an iCalendar document", reconcile.ErrSourceMalformed)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reconcile.ErrSourceMalformed, err)
	}

	events := make([]reconcile.SourceEvent, 0)
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			logger.Error("Skipping unreadable event", zap.String("uid", ev.UID), zap.Error(err))
			continue
		}
		events = append(events, ev)
	}

	logger.Debug("Parsed source calendar", zap.Int("event_count", len(events)))
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (reconcile.SourceEvent, error) {
	var out reconcile.SourceEvent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		loc := p.Value
		out.Location = &loc
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		desc := p.Value
		out.Description = &desc
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, reconcile.ErrMissingStart
	}
	start, err := icaltime.Parse(dtStart.Value, dtStart.ICalParameters)
	if err != nil {
		return out, fmt.Errorf("DTSTART: %w", err)
	}
	out.Start = start

	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		end, err := icaltime.Parse(dtEnd.Value, dtEnd.ICalParameters)
		if err != nil {
			return out, fmt.Errorf("DTEND: %w", err)
		}
		out.End = &end
	}

	return out, nil
}
