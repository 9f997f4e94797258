package reconcile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "calendar-sync/reconcile"

// Options configures a Driver.
type Options struct {
	// Title is the normalized title of every managed record.
	Title string

	// Horizon is the lookahead window measured from the start of the pass.
	Horizon time.Duration

	// Location interprets date-only and floating values. Nil means UTC.
	Location *time.Location

	// DryRun plans without writing.
	DryRun bool

	// Now returns the reference instant of a pass. Defaults to time.Now.
	Now func() time.Time
}

// Driver runs reconciliation passes. It keeps no state between passes.
type Driver struct {
	feed   Feed
	store  Store
	opts   Options
	norm   Normalizer
	logger *zap.Logger
	tracer trace.Tracer
}

// NewDriver creates a new Driver.
func NewDriver(feed Feed, store Store, opts Options, logger *zap.Logger) *Driver {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		feed:   feed,
		store:  store,
		opts:   opts,
		norm:   Normalizer{Location: opts.Location},
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// Run performs a full pass: Plan then Apply.
// The returned error is always a *PassError; per-record failures are in the Report.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	ctx, span := d.tracer.Start(ctx, "reconcile.pass")
	defer span.End()

	started := time.Now()

	plan, err := d.Plan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pass aborted")
		return nil, err
	}

	report := d.Apply(ctx, plan)
	report.StartedAt = started
	report.FinishedAt = time.Now()

	span.SetAttributes(
		attribute.Int("sync.created", report.Created),
		attribute.Int("sync.updated", report.Updated),
		attribute.Int("sync.deleted", report.Deleted),
		attribute.Int("sync.preserved", report.Preserved),
		attribute.Int("sync.failed", report.Failed),
		attribute.Bool("sync.dry_run", report.DryRun),
	)

	d.logReport(report)
	return report, nil
}

func (d *Driver) logReport(r *Report) {
	d.logger.Info("Sync pass completed",
		zap.Int("source_events", r.SourceEvents),
		zap.Int("managed_records", r.ManagedRecords),
		zap.Int("created", r.Created),
		zap.Int("updated", r.Updated),
		zap.Int("unchanged", r.Unchanged),
		zap.Int("deleted", r.Deleted),
		zap.Int("preserved", r.Preserved),
		zap.Int("duplicates", r.Duplicates),
		zap.Int("failed", r.Failed),
		zap.Bool("dry_run", r.DryRun),
		zap.Duration("took", r.FinishedAt.Sub(r.StartedAt)),
	)
	if r.Deleted > 0 {
		d.logger.Info("Removed future events that no longer exist in source", zap.Int("count", r.Deleted))
	}
	if r.Preserved > 0 {
		d.logger.Info("Preserved past events for historical record", zap.Int("count", r.Preserved))
	}
}
