package reconcile

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

const (
	stampLayoutTimed = "200601021504"
	stampLayoutDate  = "20060102"
)

// Fingerprint derives the content identity of a source event from its start, end,
// title and location. Timed values are taken at minute resolution in their own wall
// clock, date-only values at day resolution. The UID and description never
// contribute, which is what lets matching survive upstream recreation.
func Fingerprint(ev SourceEvent) (string, error) {
	if ev.Start.IsZero() {
		return "", ErrMissingStart
	}

	startStr := stamp(ev.Start)
	endStr := startStr
	if ev.End != nil && !ev.End.IsZero() {
		endStr = stamp(*ev.End)
	}

	location := ""
	if ev.Location != nil {
		location = *ev.Location
	}

	sum := sha256.Sum256([]byte(startStr + "_" + endStr + "_" + ev.Title + "_" + location))
	return hex.EncodeToString(sum[:]), nil
}

// FingerprintOrFallback returns the fingerprint of ev. When none can be derived it
// falls back to the source UID, then to a random UUID; degraded is true in both
// cases. A random identity cannot be matched by a later pass.
func FingerprintOrFallback(ev SourceEvent) (id string, degraded bool) {
	if fp, err := Fingerprint(ev); err == nil {
		return fp, false
	}
	if ev.UID != "" {
		return ev.UID, true
	}
	return uuid.NewString(), true
}

func stamp(v TimeValue) string {
	if v.DateOnly {
		return v.Time.Format(stampLayoutDate)
	}
	return v.Time.Format(stampLayoutTimed)
}
