// Package caldav is the destination store: one calendar on a CalDAV server, accessed
// through emersion/go-webdav.
//
// Store implements reconcile.Store. Every record is written as a single-event calendar
// object at <calendar path>/<record id>.ics. The fingerprint of the mirrored source event
// is kept in the X-SYNC-SOURCE-IDENTIFIER property; together with the normalized SUMMARY
// it is what marks an event as managed by the sync. Events without the property are never
// listed, updated or deleted.
//
// Calendar selection follows the user's principal: principal, calendar home set, then the
// calendar whose display name matches the configured name. An unknown name falls back to
// the first calendar with a warning.
//
// The Client interface is the seam used by tests; mocks.Client provides a testify mock.
package caldav
