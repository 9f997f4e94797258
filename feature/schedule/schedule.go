// Package schedule triggers sync passes on a cron schedule for the serve command.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is run on every tick.
type Job func(ctx context.Context)

// Scheduler runs a Job on a standard five-field cron expression.
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	cron     *cron.Cron
	job      Job
	logger   *zap.Logger
}

// New validates spec and creates a stopped Scheduler.
func New(spec string, job Job, logger *zap.Logger) (*Scheduler, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scheduler{
		spec:     spec,
		schedule: sched,
		job:      job,
		logger:   logger,
	}
	// A tick that fires while the previous one is still running is skipped.
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s.cron.Schedule(sched, cron.FuncJob(s.tick))
	return s, nil
}

func (s *Scheduler) tick() {
	s.logger.Debug("Scheduled sync tick", zap.String("schedule", s.spec))
	s.job(context.Background())
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("schedule", s.spec), zap.Time("next", s.Next(time.Now())))
}

// Stop stops the scheduler and returns a context done when running jobs finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next activation after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Feature exposes the schedule over HTTP and implements loader.Feature.
type Feature struct {
	scheduler *Scheduler
}

// NewFeature creates a new schedule feature. A nil scheduler disables it.
func NewFeature(s *Scheduler) *Feature {
	return &Feature{scheduler: s}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "schedule"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.scheduler != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/sync/schedule", f.HandleSchedule)
	return nil
}

// HandleSchedule returns the cron expression and the next activation.
// @Summary Sync Schedule
// @Description Returns the cron expression driving scheduled passes and its next activation.
// @Tags sync
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "schedule and next"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sync/schedule [get]
func (f *Feature) HandleSchedule(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"schedule": f.scheduler.spec,
		"next":     f.scheduler.Next(time.Now()),
	})
}
