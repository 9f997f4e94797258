// Package ics reads the source calendar: a read-only iCalendar feed published at an HTTP(S) URL.
//
// # Overview
//
// The package is split in three layers:
//
//   - Fetcher downloads the raw feed. When a cache directory is configured it stores the
//     last body together with its ETag and Last-Modified headers and sends conditional
//     requests, so an unchanged feed costs a 304.
//   - ParseEvents turns a payload into reconcile.SourceEvent values using golang-ical.
//     VEVENTs without a usable DTSTART are skipped and logged; the rest of the feed is kept.
//   - Feed glues both together and implements reconcile.Feed, keeping only events that
//     overlap the window of the current pass.
//
// # Failure Model
//
// Every transport failure (DNS, TLS, timeout, non-2xx status) is wrapped with
// reconcile.ErrSourceUnavailable and every unparseable payload with
// reconcile.ErrSourceMalformed. The driver treats both as fatal for the pass. A cached
// body is only reused on 304 Not Modified, never to hide a failing source.
//
// # Usage
//
//	feed := ics.NewFeed(cfg.Source, logger)
//	events, err := feed.Fetch(ctx, windowStart, windowEnd, loc)
//
// Feed URLs often embed a private token, so they are redacted before being logged.
package ics
