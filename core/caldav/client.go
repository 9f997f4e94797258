package caldav

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	dav "github.com/emersion/go-webdav/caldav"
)

// Client defines the CalDAV operations used by the Store.
type Client interface {
	// FindCurrentUserPrincipal returns the principal path of the authenticated user.
	FindCurrentUserPrincipal(ctx context.Context) (string, error)
	// FindCalendarHomeSet returns the calendar home of a principal.
	FindCalendarHomeSet(ctx context.Context, principal string) (string, error)
	// FindCalendars lists the calendars below a home set.
	FindCalendars(ctx context.Context, calendarHomeSet string) ([]dav.Calendar, error)
	// QueryCalendar runs a calendar-query REPORT.
	QueryCalendar(ctx context.Context, calendar string, query *dav.CalendarQuery) ([]dav.CalendarObject, error)
	// PutCalendarObject creates or replaces the object at path.
	PutCalendarObject(ctx context.Context, path string, cal *ical.Calendar) (*dav.CalendarObject, error)
	// RemoveAll deletes the resource at path.
	RemoveAll(ctx context.Context, path string) error
}

// NewClient creates a CalDAV client authenticated with basic auth.
func NewClient(cfg Config) (Client, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	var httpClient webdav.HTTPClient = &http.Client{Transport: transport}
	if cfg.Username != "" {
		httpClient = webdav.HTTPClientWithBasicAuth(httpClient, cfg.Username, cfg.Password)
	}

	c, err := dav.NewClient(httpClient, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return c, nil
}
