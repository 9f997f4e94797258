package caldav_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"calendar-sync/core/caldav"
	"calendar-sync/core/caldav/mocks"
	"calendar-sync/core/reconcile"

	"github.com/emersion/go-ical"
	dav "github.com/emersion/go-webdav/caldav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var calendars = []dav.Calendar{
	{Path: "/dav/calendars/jane/personal/", Name: "Personal"},
	{Path: "/dav/calendars/jane/work/", Name: "Work"},
}

func discovery() *mocks.Client {
	client := new(mocks.Client)
	client.On("FindCurrentUserPrincipal", mock.Anything).Return("/dav/principals/jane/", nil)
	client.On("FindCalendarHomeSet", mock.Anything, "/dav/principals/jane/").Return("/dav/calendars/jane/", nil)
	client.On("FindCalendars", mock.Anything, "/dav/calendars/jane/").Return(calendars, nil)
	return client
}

func TestOpen_SelectsByName(t *testing.T) {
	store, err := caldav.Open(context.Background(), discovery(), "Work", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Work", store.Calendar().Name)
}

func TestOpen_FallsBackToFirst(t *testing.T) {
	store, err := caldav.Open(context.Background(), discovery(), "Missing", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Personal", store.Calendar().Name)

	store, err = caldav.Open(context.Background(), discovery(), "", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Personal", store.Calendar().Name)
}

func TestOpen_Errors(t *testing.T) {
	t.Run("Principal", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("FindCurrentUserPrincipal", mock.Anything).Return("", errors.New("401 Unauthorized"))

		_, err := caldav.Open(context.Background(), client, "", zap.NewNop())
		assert.ErrorIs(t, err, reconcile.ErrDestinationUnavailable)
	})

	t.Run("NoCalendars", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("FindCurrentUserPrincipal", mock.Anything).Return("/p/", nil)
		client.On("FindCalendarHomeSet", mock.Anything, "/p/").Return("/h/", nil)
		client.On("FindCalendars", mock.Anything, "/h/").Return([]dav.Calendar{}, nil)

		_, err := caldav.Open(context.Background(), client, "", zap.NewNop())
		assert.ErrorIs(t, err, reconcile.ErrDestinationUnavailable)
	})
}

func TestConnect_EmptyURL(t *testing.T) {
	_, err := caldav.Connect(context.Background(), caldav.Config{}, zap.NewNop())
	assert.ErrorIs(t, err, reconcile.ErrDestinationUnavailable)
}

func event(uid, summary, identifier string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//test//EN")
	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, uid)
	ev.Props.SetText(ical.PropSummary, summary)
	ev.Props.SetDateTime(ical.PropDateTimeStart, time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC))
	if identifier != "" {
		ev.Props.SetText(caldav.PropSyncIdentifier, identifier)
	}
	cal.Children = append(cal.Children, ev.Component)
	return cal
}

func TestStore_ListManaged(t *testing.T) {
	client := discovery()
	client.On("QueryCalendar", mock.Anything, "/dav/calendars/jane/work/", mock.Anything).Return([]dav.CalendarObject{
		{Path: "/dav/calendars/jane/work/a.ics", Data: event("a", "Busy", "fp-a")},
		{Path: "/dav/calendars/jane/work/b.ics", Data: event("b", "Busy", "")},
		{Path: "/dav/calendars/jane/work/c.ics", Data: event("c", "Dentist", "fp-c")},
		{Path: "/dav/calendars/jane/work/d.ics", Data: ical.NewCalendar()},
	}, nil)

	store, err := caldav.Open(context.Background(), client, "Work", zap.NewNop())
	require.NoError(t, err)

	records, err := store.ListManaged(context.Background(), "Busy")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "fp-a", records[0].Fingerprint)
	assert.Equal(t, "/dav/calendars/jane/work/a.ics", records[0].Path)
}

func TestStore_ListManagedError(t *testing.T) {
	client := discovery()
	client.On("QueryCalendar", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("503"))

	store, err := caldav.Open(context.Background(), client, "Work", zap.NewNop())
	require.NoError(t, err)

	_, err = store.ListManaged(context.Background(), "Busy")
	assert.ErrorIs(t, err, reconcile.ErrDestinationUnavailable)
}

// TestStore_CreateThenList checks that a created record reads back unchanged.
func TestStore_CreateThenList(t *testing.T) {
	var written *ical.Calendar
	client := discovery()
	client.On("PutCalendarObject", mock.Anything, "/dav/calendars/jane/work/rec-1.ics", mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(2).(*ical.Calendar) }).
		Return(&dav.CalendarObject{Path: "/dav/calendars/jane/work/rec-1.ics"}, nil)

	store, err := caldav.Open(context.Background(), client, "Work", zap.NewNop())
	require.NoError(t, err)

	loc := "Room A"
	ev := reconcile.SourceEvent{
		Title:    "Standup",
		Start:    reconcile.Instant(time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)),
		Location: &loc,
	}
	fp, err := reconcile.Fingerprint(ev)
	require.NoError(t, err)
	rec := reconcile.BuildRecord("Busy", ev, fp, &reconcile.DestinationRecord{ID: "rec-1"})

	created, err := store.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "/dav/calendars/jane/work/rec-1.ics", created.Path)
	require.NotNil(t, written)

	client.On("QueryCalendar", mock.Anything, "/dav/calendars/jane/work/", mock.Anything).
		Return([]dav.CalendarObject{{Path: created.Path, Data: written}}, nil)

	records, err := store.ListManaged(context.Background(), "Busy")
	require.NoError(t, err)
	require.Len(t, records, 1)

	changed, reason := reconcile.Changed(ev, records[0], reconcile.Normalizer{})
	assert.False(t, changed, reason)
	assert.Equal(t, fp, records[0].Fingerprint)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	client := discovery()
	client.On("PutCalendarObject", mock.Anything, "/custom/path.ics", mock.Anything).Return(&dav.CalendarObject{}, nil)
	client.On("RemoveAll", mock.Anything, "/custom/path.ics").Return(nil)
	client.On("RemoveAll", mock.Anything, "/dav/calendars/jane/work/gone.ics").Return(errors.New("412 Precondition Failed"))

	store, err := caldav.Open(context.Background(), client, "Work", zap.NewNop())
	require.NoError(t, err)

	rec := reconcile.DestinationRecord{ID: "rec-1", Path: "/custom/path.ics", Title: "Busy", Fingerprint: "fp"}
	require.NoError(t, store.Update(context.Background(), rec))
	require.NoError(t, store.Delete(context.Background(), rec))

	err = store.Delete(context.Background(), reconcile.DestinationRecord{ID: "gone"})
	assert.ErrorContains(t, err, "412")
	client.AssertExpectations(t)
}
