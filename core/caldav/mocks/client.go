package mocks

import (
	"context"

	"github.com/emersion/go-ical"
	dav "github.com/emersion/go-webdav/caldav"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of caldav.Client
type Client struct {
	mock.Mock
}

func (m *Client) FindCurrentUserPrincipal(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Client) FindCalendarHomeSet(ctx context.Context, principal string) (string, error) {
	args := m.Called(ctx, principal)
	return args.String(0), args.Error(1)
}

func (m *Client) FindCalendars(ctx context.Context, calendarHomeSet string) ([]dav.Calendar, error) {
	args := m.Called(ctx, calendarHomeSet)
	if cals, ok := args.Get(0).([]dav.Calendar); ok {
		return cals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) QueryCalendar(ctx context.Context, calendar string, query *dav.CalendarQuery) ([]dav.CalendarObject, error) {
	args := m.Called(ctx, calendar, query)
	if objs, ok := args.Get(0).([]dav.CalendarObject); ok {
		return objs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) PutCalendarObject(ctx context.Context, path string, cal *ical.Calendar) (*dav.CalendarObject, error) {
	args := m.Called(ctx, path, cal)
	if obj, ok := args.Get(0).(*dav.CalendarObject); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) RemoveAll(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
