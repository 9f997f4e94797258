// Package reconcile provides the one-way reconciliation engine that mirrors a
// read-only source event feed into a mutable destination calendar.
//
// The engine never trusts identifiers assigned by the source. Every source event
// is reduced to a content fingerprint derived from its start, end, title and
// location, and the fingerprint is stored on the destination copy. A later pass
// matches on that fingerprint, so an upstream event that was deleted and recreated
// with a new UID still maps onto the same destination record.
//
// # Architecture
//
// The package consists of five cooperating pieces:
//
// 1. Fingerprint: derives the stable content identity of a SourceEvent.
//
// 2. Normalizer: resolves date-only, floating and zoned values into comparable
// instants in the configured timezone.
//
// 3. Changed: decides whether a matched source/destination pair has drifted.
//
// 4. IsPast: decides whether a destination record ended before the pass started.
// Past records are never deleted, they are kept as history.
//
// 5. Driver: runs a pass in four phases (acquire, upsert, orphan, report). Planning
// and applying are separate so a pass can run in dry-run mode.
//
// The Driver talks to the outside world through two interfaces, Feed and Store.
// The destination store is the only state: nothing is persisted between passes.
//
// # Failure Model
//
// Failing to fetch or parse the source, or failing to reach the destination, aborts
// the pass with a *PassError. Everything else (a single create, update or delete
// that fails) is recorded in the Report and the pass carries on.
//
// # Usage Example
//
//	driver := reconcile.NewDriver(feed, store, cfg.Sync.Options(logger), logger)
//
//	// Plan only
//	plan, err := driver.Plan(ctx)
//
//	// Full pass
//	report, err := driver.Run(ctx)
package reconcile
