package ics

import (
	"context"
	"time"

	"calendar-sync/core/reconcile"

	"go.uber.org/zap"
)

// Feed implements reconcile.Feed on top of a Fetcher.
type Feed struct {
	fetcher *Fetcher
	logger  *zap.Logger
}

// NewFeed creates a Feed for the configured source.
func NewFeed(cfg Config, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		fetcher: NewFetcher(cfg, logger),
		logger:  logger,
	}
}

// Fetch downloads and parses the feed and returns the events overlapping the window.
func (f *Feed) Fetch(ctx context.Context, windowStart, windowEnd time.Time, loc *time.Location) ([]reconcile.SourceEvent, error) {
	res, err := f.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	all, err := ParseEvents(res.Body, f.logger)
	if err != nil {
		return nil, err
	}

	n := reconcile.Normalizer{Location: loc}
	events := make([]reconcile.SourceEvent, 0, len(all))
	for _, ev := range all {
		if n.InWindow(ev, windowStart, windowEnd) {
			events = append(events, ev)
		}
	}

	f.logger.Debug("Filtered source events to window",
		zap.Int("total", len(all)),
		zap.Int("in_window", len(events)),
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd),
		zap.Bool("from_cache", res.FromCache))
	return events, nil
}
