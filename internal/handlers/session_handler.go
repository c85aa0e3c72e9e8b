package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type SessionHandler struct {
	orchestrator services.Orchestrator
	readiness    services.ReadinessChecker
}

func NewSessionHandler(orchestrator services.Orchestrator, readiness services.ReadinessChecker) *SessionHandler {
	return &SessionHandler{
		orchestrator: orchestrator,
		readiness:    readiness,
	}
}

// HandleGetSession handles GET /session
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	return c.JSON(h.orchestrator.Snapshot())
}

// HandleReset handles POST /reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	h.orchestrator.Reset()
	return c.JSON(h.orchestrator.Snapshot())
}

// HandleHealth handles GET /health
func (h *SessionHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthStatus{
		Status:       "healthy",
		BackendReady: h.readiness.IsReady(),
		Time:         time.Now(),
	})
}
