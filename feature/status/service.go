package status

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"calendar-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RunFunc performs one full sync pass.
type RunFunc func(ctx context.Context) (*reconcile.Report, error)

// Snapshot describes the outcome of a pass.
type Snapshot struct {
	// Trigger names what started the pass (schedule, api, startup).
	Trigger string `json:"trigger"`
	// StartedAt and FinishedAt bound the pass.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Report is nil when the pass aborted.
	Report *reconcile.Report `json:"report,omitempty"`
	// Error is set when the pass aborted.
	Error string `json:"error,omitempty"`
	// Phase is the step that failed for an aborted pass.
	Phase reconcile.Phase `json:"phase,omitempty"`
}

// Status is the current state reported by the API.
type Status struct {
	Running bool      `json:"running"`
	Passes  int64     `json:"passes"`
	Last    *Snapshot `json:"last,omitempty"`
}

// Service runs passes and remembers the last outcome.
type Service struct {
	run    RunFunc
	logger *zap.Logger

	sf      singleflight.Group
	running atomic.Bool
	passes  atomic.Int64

	mu   sync.RWMutex
	last *Snapshot
}

// NewService creates a new status service.
func NewService(run RunFunc, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{run: run, logger: logger}
}

// Trigger runs a pass, or joins the one already running.
// shared reports whether the result came from a pass started by another caller.
func (s *Service) Trigger(ctx context.Context, trigger string) (snap *Snapshot, shared bool, err error) {
	v, err, shared := s.sf.Do("pass", func() (any, error) {
		// The pass outlives the caller that started it.
		return s.execute(context.WithoutCancel(ctx), trigger)
	})
	if v == nil {
		return nil, shared, err
	}
	return v.(*Snapshot), shared, err
}

func (s *Service) execute(ctx context.Context, trigger string) (*Snapshot, error) {
	s.running.Store(true)
	defer s.running.Store(false)

	snap := &Snapshot{Trigger: trigger, StartedAt: time.Now()}
	s.logger.Info("Starting sync pass", zap.String("trigger", trigger))

	report, err := s.run(ctx)
	snap.FinishedAt = time.Now()
	snap.Report = report
	if err != nil {
		snap.Error = err.Error()
		var pe *reconcile.PassError
		if errors.As(err, &pe) {
			snap.Phase = pe.Phase
		}
		s.logger.Error("Sync pass aborted", zap.String("trigger", trigger), zap.Error(err))
	}

	s.passes.Add(1)
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	return snap, err
}

// Status returns the current state.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Running: s.running.Load(),
		Passes:  s.passes.Load(),
		Last:    s.last,
	}
}
