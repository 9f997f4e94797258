package status_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"calendar-sync/core/reconcile"
	"calendar-sync/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_TriggerRecordsLast(t *testing.T) {
	svc := status.NewService(func(ctx context.Context) (*reconcile.Report, error) {
		return &reconcile.Report{Created: 2}, nil
	}, zap.NewNop())

	assert.Nil(t, svc.Status().Last)

	snap, shared, err := svc.Trigger(context.Background(), "api")
	require.NoError(t, err)
	assert.False(t, shared)
	assert.Equal(t, 2, snap.Report.Created)

	st := svc.Status()
	assert.False(t, st.Running)
	assert.Equal(t, int64(1), st.Passes)
	require.NotNil(t, st.Last)
	assert.Equal(t, "api", st.Last.Trigger)
}

func TestService_TriggerFatal(t *testing.T) {
	svc := status.NewService(func(ctx context.Context) (*reconcile.Report, error) {
		return nil, &reconcile.PassError{Phase: reconcile.PhaseFetchSource, Err: reconcile.ErrSourceUnavailable}
	}, zap.NewNop())

	snap, _, err := svc.Trigger(context.Background(), "schedule")
	require.Error(t, err)
	require.NotNil(t, snap)
	assert.Nil(t, snap.Report)
	assert.Equal(t, reconcile.PhaseFetchSource, snap.Phase)
	assert.NotEmpty(t, svc.Status().Last.Error)
}

func TestService_CoalescesConcurrentTriggers(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})

	svc := status.NewService(func(ctx context.Context) (*reconcile.Report, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return &reconcile.Report{}, nil
	}, zap.NewNop())

	var wg sync.WaitGroup
	var sharedCount int32
	trigger := func() {
		defer wg.Done()
		_, shared, err := svc.Trigger(context.Background(), "api")
		assert.NoError(t, err)
		if shared {
			atomic.AddInt32(&sharedCount, 1)
		}
	}

	wg.Add(1)
	go trigger()
	<-started
	assert.True(t, svc.Status().Running)

	wg.Add(1)
	go trigger()
	// Give the second caller time to join the in-flight pass.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&sharedCount))
}

func TestService_PassOutlivesCaller(t *testing.T) {
	svc := status.NewService(func(ctx context.Context) (*reconcile.Report, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &reconcile.Report{}, nil
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := svc.Trigger(ctx, "api")
	assert.NoError(t, err)
}

func newApp(run status.RunFunc) *fiber.App {
	app := fiber.New()
	feature := status.NewFeature(run, zap.NewNop())
	_ = feature.Load(app)
	return app
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandler_Health(t *testing.T) {
	app := newApp(nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp.Body)["status"])
}

func TestHandler_RunThenStatus(t *testing.T) {
	app := newApp(func(ctx context.Context) (*reconcile.Report, error) {
		return &reconcile.Report{Created: 1, Deleted: 1}, nil
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp.Body)
	pass := body["pass"].(map[string]any)
	report := pass["report"].(map[string]any)
	assert.Equal(t, float64(1), report["created"])

	resp, err = app.Test(httptest.NewRequest("GET", "/sync/status", nil))
	require.NoError(t, err)
	st := decode(t, resp.Body)
	assert.Equal(t, float64(1), st["passes"])
	assert.Equal(t, false, st["running"])
}

func TestHandler_RunFatal(t *testing.T) {
	app := newApp(func(ctx context.Context) (*reconcile.Report, error) {
		return nil, &reconcile.PassError{
			Phase: reconcile.PhaseListDestination,
			Err:   fmt.Errorf("%w: 401", reconcile.ErrDestinationUnavailable),
		}
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, decode(t, resp.Body)["error"], "list_destination")
}

func TestFeature(t *testing.T) {
	f := status.NewFeature(nil, nil)
	assert.Equal(t, "status", f.Name())
	assert.True(t, f.IsEnabled())
	assert.NotNil(t, f.Service())
}
