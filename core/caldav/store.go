package caldav

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calendar-sync/core/reconcile"

	"github.com/emersion/go-ical"
	dav "github.com/emersion/go-webdav/caldav"
	"go.uber.org/zap"
)

// Store implements reconcile.Store on one CalDAV calendar.
type Store struct {
	client   Client
	calendar dav.Calendar
	logger   *zap.Logger
	now      func() time.Time
}

// Connect creates a client from cfg and opens the configured calendar.
// Errors wrap reconcile.ErrDestinationUnavailable.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: destination URL is empty", reconcile.ErrDestinationUnavailable)
	}
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reconcile.ErrDestinationUnavailable, err)
	}
	return Open(ctx, client, cfg.Calendar, logger)
}

// Open discovers the calendars of the authenticated user and selects the one whose
// display name equals name. When name is empty or unknown the first calendar is used.
func Open(ctx context.Context, client Client, name string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: finding principal: %v", reconcile.ErrDestinationUnavailable, err)
	}
	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("%w: finding calendar home: %v", reconcile.ErrDestinationUnavailable, err)
	}
	calendars, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("%w: listing calendars: %v", reconcile.ErrDestinationUnavailable, err)
	}
	if len(calendars) == 0 {
		return nil, fmt.Errorf("%w: no calendars found for %s", reconcile.ErrDestinationUnavailable, principal)
	}

	selected := calendars[0]
	found := false
	if name != "" {
		for _, cal := range calendars {
			if cal.Name == name {
				selected = cal
				found = true
				break
			}
		}
		if !found {
			logger.Warn("Calendar not found, using first available calendar",
				zap.String("wanted", name), zap.String("using", selected.Name))
		}
	}

	logger.Info("Using destination calendar", zap.String("name", selected.Name), zap.String("path", selected.Path))

	return &Store{
		client:   client,
		calendar: selected,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Calendar returns the selected calendar.
func (s *Store) Calendar() dav.Calendar {
	return s.calendar
}

// ListManaged returns every event whose SUMMARY equals title and that carries a sync identifier.
func (s *Store) ListManaged(ctx context.Context, title string) ([]reconcile.DestinationRecord, error) {
	query := &dav.CalendarQuery{
		CompRequest: dav.CalendarCompRequest{
			Name:     ical.CompCalendar,
			AllProps: true,
			Comps: []dav.CalendarCompRequest{{
				Name:     ical.CompEvent,
				AllProps: true,
			}},
		},
		CompFilter: dav.CompFilter{
			Name:  ical.CompCalendar,
			Comps: []dav.CompFilter{{Name: ical.CompEvent}},
		},
	}

	objects, err := s.client.QueryCalendar(ctx, s.calendar.Path, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %v", reconcile.ErrDestinationUnavailable, s.calendar.Path, err)
	}

	records := make([]reconcile.DestinationRecord, 0)
	for _, obj := range objects {
		rec, err := decodeRecord(obj)
		if err != nil {
			s.logger.Debug("Skipping calendar object", zap.String("path", obj.Path), zap.Error(err))
			continue
		}
		if rec.Title != title || rec.Fingerprint == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Create writes a new calendar object named after the record ID.
func (s *Store) Create(ctx context.Context, rec reconcile.DestinationRecord) (reconcile.DestinationRecord, error) {
	rec.Path = s.objectPath(rec.ID)
	if _, err := s.client.PutCalendarObject(ctx, rec.Path, encodeRecord(rec, s.now())); err != nil {
		return reconcile.DestinationRecord{}, fmt.Errorf("creating %s: %w", rec.Path, err)
	}
	return rec, nil
}

// Update replaces the calendar object of an existing record.
func (s *Store) Update(ctx context.Context, rec reconcile.DestinationRecord) error {
	if rec.Path == "" {
		rec.Path = s.objectPath(rec.ID)
	}
	if _, err := s.client.PutCalendarObject(ctx, rec.Path, encodeRecord(rec, s.now())); err != nil {
		return fmt.Errorf("updating %s: %w", rec.Path, err)
	}
	return nil
}

// Delete removes the calendar object of a record.
func (s *Store) Delete(ctx context.Context, rec reconcile.DestinationRecord) error {
	path := rec.Path
	if path == "" {
		path = s.objectPath(rec.ID)
	}
	if err := s.client.RemoveAll(ctx, path); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

func (s *Store) objectPath(id string) string {
	base := s.calendar.Path
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + id + ".ics"
}
