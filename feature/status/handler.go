package status

import (
	"calendar-sync/core/logger"
	"calendar-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)

	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/run", h.HandleRun)
}

// HandleHealth reports liveness.
// @Summary Health Check
// @Description Reports that the process is up. Served without an API key.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string "ok"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleStatus returns the last pass outcome.
// @Summary Sync Status
// @Description Returns whether a pass is running, how many passes ran and the outcome of the last one.
// @Tags sync
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} status.Status
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleRun runs a pass and returns its report.
// An aborted pass answers 502 since the failing party is the source or the destination.
// @Summary Run Sync Pass
// @Description Runs a pass and waits for it. A request arriving while a pass runs shares that pass.
// @Tags sync
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "shared flag and pass snapshot"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Pass failed"
// @Failure 502 {object} map[string]interface{} "Source or destination unavailable"
// @Router /sync/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, shared, err := h.service.Trigger(c.UserContext(), "api")
	if err != nil {
		l.Error("Sync pass failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		if reconcile.IsFatal(err) {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"error":  err.Error(),
			"shared": shared,
			"pass":   snap,
		})
	}

	return c.JSON(fiber.Map{
		"shared": shared,
		"pass":   snap,
	})
}
