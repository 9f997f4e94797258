package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingStart is returned by Fingerprint for events without a start.
	ErrMissingStart = errors.New("event has no start")

	// ErrSourceUnavailable marks transport failures of the feed (network, non-2xx status).
	ErrSourceUnavailable = errors.New("source feed unavailable")

	// ErrSourceMalformed marks feed payloads that cannot be parsed.
	ErrSourceMalformed = errors.New("source feed malformed")

	// ErrDestinationUnavailable marks failures to connect to or list the destination store.
	ErrDestinationUnavailable = errors.New("destination store unavailable")
)

// Phase names the step of a pass that failed fatally.
type Phase string

const (
	PhaseConnect         Phase = "connect_destination"
	PhaseFetchSource     Phase = "fetch_source"
	PhaseListDestination Phase = "list_destination"
)

// PassError is returned when a pass aborts before any write was attempted.
type PassError struct {
	Phase Phase
	Err   error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("sync pass aborted during %s: %v", e.Phase, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err aborted a pass.
func IsFatal(err error) bool {
	var pe *PassError
	return errors.As(err, &pe)
}
