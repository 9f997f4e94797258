// Package status exposes sync passes over HTTP for the serve command.
//
// # Routes
//
//   - GET /health: liveness, served without an API key
//   - GET /sync/status: the outcome of the last pass and whether one is running
//   - POST /sync/run: runs a pass now and returns its report
//
// # Coalescing
//
// Passes are started through Service.Trigger, whether by the scheduler or by an HTTP
// request. Concurrent triggers share one in-flight pass (singleflight), so the
// destination never sees two writers from the same process.
package status
