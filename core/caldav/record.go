package caldav

import (
	"errors"
	"time"

	"calendar-sync/core/icaltime"
	"calendar-sync/core/reconcile"

	"github.com/emersion/go-ical"
	dav "github.com/emersion/go-webdav/caldav"
)

const (
	// PropSyncIdentifier carries the fingerprint of the mirrored source event.
	PropSyncIdentifier = "X-SYNC-SOURCE-IDENTIFIER"

	productID = "-//calendar-sync//EN"
)

var errNoEvent = errors.New("calendar object has no VEVENT")

// encodeRecord renders a record as a single-event calendar object.
func encodeRecord(rec reconcile.DestinationRecord, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, rec.ID)
	ev.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ev.Props.SetText(ical.PropSummary, rec.Title)
	if rec.Start != nil && !rec.Start.IsZero() {
		setTime(ev.Component, ical.PropDateTimeStart, *rec.Start)
	}
	if rec.End != nil && !rec.End.IsZero() {
		setTime(ev.Component, ical.PropDateTimeEnd, *rec.End)
	}
	if rec.Location != nil {
		ev.Props.SetText(ical.PropLocation, *rec.Location)
	}
	if rec.Description != nil {
		ev.Props.SetText(ical.PropDescription, *rec.Description)
	}
	ev.Props.SetText(PropSyncIdentifier, rec.Fingerprint)

	cal.Children = append(cal.Children, ev.Component)
	return cal
}

func setTime(comp *ical.Component, name string, v reconcile.TimeValue) {
	value, params := icaltime.Format(v)
	prop := ical.NewProp(name)
	prop.Value = value
	for k, p := range params {
		prop.Params.Set(k, p)
	}
	comp.Props.Set(prop)
}

// decodeRecord reads the first VEVENT of a calendar object.
// Unreadable times are left nil so the record is refreshed on the next update.
func decodeRecord(obj dav.CalendarObject) (reconcile.DestinationRecord, error) {
	rec := reconcile.DestinationRecord{Path: obj.Path}
	if obj.Data == nil {
		return rec, errNoEvent
	}

	var ev *ical.Component
	for _, child := range obj.Data.Children {
		if child.Name == ical.CompEvent {
			ev = child
			break
		}
	}
	if ev == nil {
		return rec, errNoEvent
	}

	rec.ID = text(ev, ical.PropUID)
	rec.Title = text(ev, ical.PropSummary)
	rec.Fingerprint = text(ev, PropSyncIdentifier)
	rec.Start = timeProp(ev, ical.PropDateTimeStart)
	rec.End = timeProp(ev, ical.PropDateTimeEnd)
	rec.Location = optionalText(ev, ical.PropLocation)
	rec.Description = optionalText(ev, ical.PropDescription)

	return rec, nil
}

func text(comp *ical.Component, name string) string {
	if s := optionalText(comp, name); s != nil {
		return *s
	}
	return ""
}

func optionalText(comp *ical.Component, name string) *string {
	prop := comp.Props.Get(name)
	if prop == nil {
		return nil
	}
	s, err := prop.Text()
	if err != nil {
		s = prop.Value
	}
	return &s
}

func timeProp(comp *ical.Component, name string) *reconcile.TimeValue {
	prop := comp.Props.Get(name)
	if prop == nil {
		return nil
	}
	v, err := icaltime.Parse(prop.Value, prop.Params)
	if err != nil {
		return nil
	}
	return &v
}
