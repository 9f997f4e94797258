package reconcile

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Plan acquires the candidate set and decides what to do with every source event
// and every managed record. It does NOT write; use Apply for that.
//
// Fetch and list failures abort with a *PassError before any decision is made.
func (d *Driver) Plan(ctx context.Context) (*Plan, error) {
	ctx, span := d.tracer.Start(ctx, "reconcile.plan")
	defer span.End()

	now := d.opts.Now().In(d.opts.Location)
	windowEnd := now.Add(d.opts.Horizon)

	// Phase 1: acquire candidate set
	events, err := d.feed.Fetch(ctx, now, windowEnd, d.opts.Location)
	if err != nil {
		d.logger.Error("Failed to fetch source calendar", zap.Error(err))
		return nil, &PassError{Phase: PhaseFetchSource, Err: err}
	}
	d.logger.Info("Found events in source calendar within date range", zap.Int("count", len(events)))

	records, err := d.store.ListManaged(ctx, d.opts.Title)
	if err != nil {
		d.logger.Error("Failed to list destination events", zap.Error(err))
		return nil, &PassError{Phase: PhaseListDestination, Err: err}
	}
	d.logger.Info("Found existing synced events in destination calendar", zap.Int("count", len(records)))

	plan := &Plan{
		Now:         now,
		WindowStart: now,
		WindowEnd:   windowEnd,
	}
	plan.Summary.SourceEvents = len(events)
	plan.Summary.ManagedRecords = len(records)

	// Index managed records by fingerprint. The first record wins; later records
	// carrying the same fingerprint are handled as orphans.
	primary := make(map[string]int, len(records))
	for i, rec := range records {
		if rec.Fingerprint == "" {
			continue
		}
		if _, exists := primary[rec.Fingerprint]; !exists {
			primary[rec.Fingerprint] = i
		}
	}

	// Phase 2: upsert decisions, in feed order
	processed := make(map[string]struct{}, len(events))
	for i := range events {
		ev := events[i]

		fp, degraded := FingerprintOrFallback(ev)
		if degraded {
			plan.Summary.Degraded++
			d.logger.Warn("Could not fingerprint event, using fallback identity",
				zap.String("uid", ev.UID), zap.String("identifier", fp))
		}

		if _, seen := processed[fp]; seen {
			// Two source events with identical start, end, title and location
			// cannot be told apart; only the first one is mirrored.
			plan.Summary.Duplicates++
			d.logger.Warn("Skipping source event with duplicate identifier",
				zap.String("identifier", fp), zap.String("uid", ev.UID))
			continue
		}
		processed[fp] = struct{}{}

		idx, matched := primary[fp]
		if !matched {
			plan.Actions = append(plan.Actions, Action{
				Type:        ActionCreate,
				Fingerprint: fp,
				Reason:      "no synced event with this identifier",
				Source:      &ev,
			})
			plan.Summary.Creates++
			continue
		}

		rec := records[idx]
		changed, reason := Changed(ev, rec, d.norm)
		if !changed {
			plan.Summary.Unchanged++
			d.logger.Debug("No changes needed for event", zap.String("identifier", fp))
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:        ActionUpdate,
			Fingerprint: fp,
			Reason:      reason,
			Source:      &ev,
			Record:      &rec,
		})
		plan.Summary.Updates++
	}

	// Phase 3: orphan decisions, in store order
	for i := range records {
		rec := records[i]
		if rec.Fingerprint == "" {
			continue
		}

		_, inSource := processed[rec.Fingerprint]
		if inSource && primary[rec.Fingerprint] == i {
			continue
		}

		reason := "identifier absent from source"
		if inSource {
			reason = "duplicate synced event for identifier"
		}

		if IsPast(rec, now, d.norm) {
			plan.Actions = append(plan.Actions, Action{
				Type:        ActionPreserve,
				Fingerprint: rec.Fingerprint,
				Reason:      reason + "; event is in the past",
				Record:      &rec,
			})
			plan.Summary.Preserved++
			continue
		}

		plan.Actions = append(plan.Actions, Action{
			Type:        ActionDelete,
			Fingerprint: rec.Fingerprint,
			Reason:      reason,
			Record:      &rec,
		})
		plan.Summary.Deletes++
	}

	span.SetAttributes(
		attribute.Int("sync.source_events", plan.Summary.SourceEvents),
		attribute.Int("sync.managed_records", plan.Summary.ManagedRecords),
		attribute.Int("sync.actions", len(plan.Actions)),
	)

	return plan, nil
}

// Apply executes the actions of a plan one at a time.
// A failing action is recorded in the Report and does not stop the remaining ones.
// In dry-run mode nothing is written and the Report counts what would have happened.
func (d *Driver) Apply(ctx context.Context, plan *Plan) *Report {
	ctx, span := d.tracer.Start(ctx, "reconcile.apply")
	defer span.End()

	report := &Report{
		DryRun:         d.opts.DryRun,
		SourceEvents:   plan.Summary.SourceEvents,
		ManagedRecords: plan.Summary.ManagedRecords,
		Unchanged:      plan.Summary.Unchanged,
		Duplicates:     plan.Summary.Duplicates,
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionCreate:
			rec := BuildRecord(d.opts.Title, *action.Source, action.Fingerprint, nil)
			if d.opts.DryRun {
				report.Created++
				d.logger.Info("Would create event", zap.String("title", rec.Title), zap.String("identifier", action.Fingerprint))
				continue
			}
			created, err := d.store.Create(ctx, rec)
			if err != nil {
				d.fail(report, action, rec.ID, err)
				continue
			}
			report.Created++
			d.logger.Info("Created new event",
				zap.String("title", created.Title),
				zap.String("identifier", action.Fingerprint),
				zap.String("id", created.ID))

		case ActionUpdate:
			rec := BuildRecord(d.opts.Title, *action.Source, action.Fingerprint, action.Record)
			if d.opts.DryRun {
				report.Updated++
				d.logger.Info("Would update event", zap.String("identifier", action.Fingerprint), zap.String("reason", action.Reason))
				continue
			}
			if err := d.store.Update(ctx, rec); err != nil {
				d.fail(report, action, rec.ID, err)
				continue
			}
			report.Updated++
			d.logger.Info("Updated existing event",
				zap.String("title", rec.Title),
				zap.String("identifier", action.Fingerprint),
				zap.String("reason", action.Reason))

		case ActionDelete:
			if d.opts.DryRun {
				report.Deleted++
				d.logger.Info("Would delete event", zap.String("identifier", action.Fingerprint))
				continue
			}
			if err := d.store.Delete(ctx, *action.Record); err != nil {
				d.fail(report, action, action.Record.ID, err)
				continue
			}
			report.Deleted++
			d.logger.Info("Deleted event from destination calendar", zap.String("identifier", action.Fingerprint))

		case ActionPreserve:
			report.Preserved++
			d.logger.Debug("Preserved past event in destination calendar", zap.String("identifier", action.Fingerprint))
		}
	}

	span.SetAttributes(attribute.Int("sync.failed", report.Failed))
	return report
}

func (d *Driver) fail(report *Report, action Action, recordID string, err error) {
	report.Failed++
	report.Failures = append(report.Failures, Failure{
		Action:      action.Type,
		Fingerprint: action.Fingerprint,
		RecordID:    recordID,
		Reason:      err.Error(),
	})
	d.logger.Error("Failed to "+string(action.Type)+" event",
		zap.String("identifier", action.Fingerprint),
		zap.String("id", recordID),
		zap.Error(err))
}

// BuildRecord builds the destination copy of a source event. When existing is set
// the record keeps its ID and path; otherwise a fresh ID is assigned.
func BuildRecord(title string, ev SourceEvent, fingerprint string, existing *DestinationRecord) DestinationRecord {
	start := ev.Start
	rec := DestinationRecord{
		Title:       title,
		Start:       &start,
		Location:    cloneString(ev.Location),
		Description: cloneString(ev.Description),
		Fingerprint: fingerprint,
	}
	if ev.End != nil && !ev.End.IsZero() {
		end := *ev.End
		rec.End = &end
	}
	if existing != nil {
		rec.ID = existing.ID
		rec.Path = existing.Path
	} else {
		rec.ID = uuid.NewString()
	}
	return rec
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
