package reconcile

import "time"

// IsPast reports whether the record ended before now.
//
// The effective end is End, else Start. A date-only effective end counts until
// 23:59:59 of that day in now's location. A record without any time, or one that
// cannot be classified, is reported as not past.
func IsPast(rec DestinationRecord, now time.Time, n Normalizer) (past bool) {
	defer func() {
		if recover() != nil {
			past = false
		}
	}()

	var eff TimeValue
	switch {
	case rec.End != nil && !rec.End.IsZero():
		eff = *rec.End
	case rec.Start != nil && !rec.Start.IsZero():
		eff = *rec.Start
	default:
		return false
	}

	var end time.Time
	if eff.DateOnly {
		y, m, d := eff.Time.Date()
		end = time.Date(y, m, d, 23, 59, 59, 0, now.Location())
	} else {
		end = n.Instant(eff)
	}

	return end.Before(now)
}
