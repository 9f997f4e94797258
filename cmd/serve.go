package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calendar-sync/core/loader"
	"calendar-sync/core/logger"
	"calendar-sync/core/middleware/auth"
	"calendar-sync/core/middleware/rayid"
	"calendar-sync/feature/schedule"
	"calendar-sync/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "calendar-sync/docs/swagger"
)

// @title Calendar Sync API
// @version 1.0
// @description Status and control API of the calendar sync service.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd runs passes on a schedule and serves the status API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled synchronization with an HTTP status API",
	Long: `Runs a pass at startup and then on the configured cron schedule.

The HTTP server exposes /health, GET /sync/status, POST /sync/run and
GET /sync/schedule, plus the API documentation under /swagger. When
server.api_key is set every route except /health and /swagger requires the
X-API-Key header.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("schedule", "*/15 * * * *", "Cron expression for scheduled passes")
	serveCmd.Flags().String("port", "8080", "HTTP port")
	serveCmd.Flags().Bool("dry-run", false, "Plan passes without writing to the destination")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logg, shutdown, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer logg.Sync()
	defer func() { _ = shutdown(context.Background()) }()
	zap.ReplaceGlobals(logg)

	if !cfg.Server.IsValidPort() {
		return fmt.Errorf("invalid server port %q", cfg.Server.Port)
	}

	statusFeature := status.NewFeature(newRunner(cfg, logg), logg)
	svc := statusFeature.Service()

	scheduler, err := schedule.New(cfg.Sync.Schedule, func(ctx context.Context) {
		_, _, _ = svc.Trigger(ctx, "schedule")
	}, logg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// API documentation stays public
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Public: []string{"/health"}}))

	mgr := loader.NewManager(logg)
	mgr.Register(statusFeature)
	mgr.Register(schedule.NewFeature(scheduler))
	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			logg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	go func() {
		_, _, _ = svc.Trigger(context.Background(), "startup")
	}()
	scheduler.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logg.Info("Shutting down server...")

	<-scheduler.Stop().Done()
	return app.ShutdownWithTimeout(10 * time.Second)
}
