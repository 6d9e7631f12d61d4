package http

import (
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/infra/quota"
	"github.com/gofiber/fiber/v2"
)

type healthHandler struct {
	tracker    *quota.Tracker
	maxPrompts int
}

func NewHealthHandler(tracker *quota.Tracker, maxPrompts int) Handler {
	return &healthHandler{
		tracker:    tracker,
		maxPrompts: maxPrompts,
	}
}

func (s *healthHandler) Handle(c *fiber.Ctx) error {
	used, _ := s.tracker.Usage()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "healthy",
		"timestamp":   time.Now().Format(time.RFC3339),
		"promptsUsed": used,
		"maxPrompts":  s.maxPrompts,
	})
}
