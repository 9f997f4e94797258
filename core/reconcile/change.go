package reconcile

import "fmt"

// Changed reports whether the destination copy drifted from its source event.
// The returned reason describes the first difference found.
//
// The title is not compared: it is always overwritten with the normalized title.
// A value that cannot be read on either side counts as a change.
func Changed(src SourceEvent, dst DestinationRecord, n Normalizer) (bool, string) {
	if src.Start.IsZero() || dst.Start == nil || dst.Start.IsZero() {
		return true, "start unreadable"
	}
	if changed, why := timeChanged(src.Start, *dst.Start, n); changed {
		return true, "start " + why
	}

	srcHasEnd := src.End != nil && !src.End.IsZero()
	dstHasEnd := dst.End != nil && !dst.End.IsZero()
	switch {
	case srcHasEnd && dstHasEnd:
		if changed, why := timeChanged(*src.End, *dst.End, n); changed {
			return true, "end " + why
		}
	case srcHasEnd != dstHasEnd:
		return true, "end presence differs"
	}

	if changed, why := textChanged(src.Location, dst.Location); changed {
		return true, "location " + why
	}
	if changed, why := textChanged(src.Description, dst.Description); changed {
		return true, "description " + why
	}

	return false, ""
}

func timeChanged(a, b TimeValue, n Normalizer) (bool, string) {
	if a.DateOnly != b.DateOnly {
		return true, "kind differs"
	}
	ai, bi := n.Instant(a), n.Instant(b)
	if !ai.Equal(bi) {
		return true, fmt.Sprintf("differs: src=%s dst=%s", ai.Format("2006-01-02T15:04:05Z07:00"), bi.Format("2006-01-02T15:04:05Z07:00"))
	}
	return false, ""
}

func textChanged(a, b *string) (bool, string) {
	switch {
	case a == nil && b == nil:
		return false, ""
	case a == nil || b == nil:
		return true, "presence differs"
	case *a != *b:
		return true, "differs"
	}
	return false, ""
}
