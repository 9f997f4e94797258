package reconcile

import (
	"context"
	"time"
)

// Feed provides source events for a pass.
type Feed interface {
	// Fetch returns the events whose [start, end] interval overlaps
	// [windowStart, windowEnd]. Date-only and floating values are interpreted in loc.
	// Transport failures must wrap ErrSourceUnavailable and unparseable payloads
	// must wrap ErrSourceMalformed.
	//
	// Events handed to the Driver without a start get a fallback identity (see
	// FingerprintOrFallback). The iCalendar feed in core/ics never returns such
	// events: it drops a VEVENT without a readable DTSTART, so the fallback only
	// applies to other Feed implementations.
	Fetch(ctx context.Context, windowStart, windowEnd time.Time, loc *time.Location) ([]SourceEvent, error)
}

// Store is the destination calendar.
// Implementations must preserve DestinationRecord.Fingerprint verbatim across
// Create, Update and ListManaged.
type Store interface {
	// ListManaged returns every record whose title equals title and that carries a fingerprint.
	// Failures must wrap ErrDestinationUnavailable.
	ListManaged(ctx context.Context, title string) ([]DestinationRecord, error)

	// Create persists a new record and returns it with any store-assigned fields set.
	Create(ctx context.Context, rec DestinationRecord) (DestinationRecord, error)

	// Update replaces the content of an existing record, keeping its ID and fingerprint.
	Update(ctx context.Context, rec DestinationRecord) error

	// Delete removes a record.
	Delete(ctx context.Context, rec DestinationRecord) error
}
