package reconcile

import "time"

// TimeValue is a calendar time as it appears on the wire.
// The zero value means the value is absent.
type TimeValue struct {
	// Time holds the instant. For date-only values only the year, month and day
	// are meaningful. For floating values the wall clock is meaningful and the
	// location is irrelevant.
	Time time.Time `json:"time"`

	// DateOnly is set for VALUE=DATE values (all-day events).
	DateOnly bool `json:"date_only,omitempty"`

	// Floating is set for date-times that carry no timezone.
	Floating bool `json:"floating,omitempty"`
}

// IsZero reports whether the value is absent.
func (v TimeValue) IsZero() bool {
	return v.Time.IsZero()
}

// Date returns a date-only TimeValue for the given day.
func Date(year int, month time.Month, day int) TimeValue {
	return TimeValue{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), DateOnly: true}
}

// Instant returns a zoned TimeValue.
func Instant(t time.Time) TimeValue {
	return TimeValue{Time: t}
}

// Floating returns a TimeValue without timezone for the given wall clock.
func Floating(year int, month time.Month, day, hour, min int) TimeValue {
	return TimeValue{Time: time.Date(year, month, day, hour, min, 0, 0, time.UTC), Floating: true}
}

// SourceEvent is one event read from the source feed for a single pass.
type SourceEvent struct {
	// UID is the identifier assigned by the source. It is not stable across
	// recreation and is only used as a fallback identity.
	UID string `json:"uid,omitempty"`

	// Title is the summary before normalization.
	Title string `json:"title"`

	// Start is required for fingerprinting.
	Start TimeValue `json:"start"`

	// End is nil when the source declares no end.
	End *TimeValue `json:"end,omitempty"`

	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DestinationRecord is the mirrored copy of a source event in the destination store.
type DestinationRecord struct {
	// ID is the destination-assigned UID.
	ID string `json:"id"`

	// Path is the store-specific location of the record (e.g. a CalDAV object path).
	Path string `json:"path,omitempty"`

	// Title is the normalized title.
	Title string `json:"title"`

	Start       *TimeValue `json:"start,omitempty"`
	End         *TimeValue `json:"end,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`

	// Fingerprint is the content identity of the source event this record mirrors.
	// An empty fingerprint means the record is not managed by the sync.
	Fingerprint string `json:"fingerprint"`
}

// ActionType represents the decision taken for one event or record.
type ActionType string

const (
	// ActionCreate creates a destination record for an unmatched source event.
	ActionCreate ActionType = "create"
	// ActionUpdate refreshes a matched destination record in place.
	ActionUpdate ActionType = "update"
	// ActionDelete removes an orphaned destination record that is not past.
	ActionDelete ActionType = "delete"
	// ActionPreserve keeps an orphaned destination record because it is past.
	ActionPreserve ActionType = "preserve"
)

// Action represents a planned decision.
type Action struct {
	// Type specifies the decision.
	Type ActionType `json:"type"`

	// Fingerprint is the identity the action is keyed on.
	Fingerprint string `json:"fingerprint"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Source is set for create and update actions.
	Source *SourceEvent `json:"-"`

	// Record is the existing destination record for update, delete and preserve actions.
	Record *DestinationRecord `json:"-"`
}

// Plan contains the decisions of a pass before they are applied.
type Plan struct {
	// Now is the reference instant of the pass.
	Now time.Time `json:"now"`

	// WindowStart and WindowEnd bound the source events considered.
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// Actions is ordered: upserts in feed order, then orphans in store order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	SourceEvents   int `json:"source_events"`
	ManagedRecords int `json:"managed_records"`
	Creates        int `json:"creates"`
	Updates        int `json:"updates"`
	Unchanged      int `json:"unchanged"`
	Deletes        int `json:"deletes"`
	Preserved      int `json:"preserved"`

	// Duplicates counts source events whose fingerprint was already seen in the pass.
	Duplicates int `json:"duplicates"`

	// Degraded counts source events identified by UID or a random id instead of a fingerprint.
	Degraded int `json:"degraded"`
}

// Failure describes a per-record operation that did not succeed.
type Failure struct {
	Action      ActionType `json:"action"`
	Fingerprint string     `json:"fingerprint"`
	RecordID    string     `json:"record_id,omitempty"`
	Reason      string     `json:"reason"`
}

// Report is the outcome of an applied pass.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DryRun     bool      `json:"dry_run"`

	SourceEvents   int `json:"source_events"`
	ManagedRecords int `json:"managed_records"`

	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Unchanged  int `json:"unchanged"`
	Deleted    int `json:"deleted"`
	Preserved  int `json:"preserved"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`

	Failures []Failure `json:"failures,omitempty"`
}

// Mutations returns the number of writes performed (or that would be performed in dry-run).
func (r *Report) Mutations() int {
	return r.Created + r.Updated + r.Deleted
}
