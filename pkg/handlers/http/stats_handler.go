package http

import (
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/infra/quota"
	"github.com/gofiber/fiber/v2"
)

type statsHandler struct {
	tracker    *quota.Tracker
	maxPrompts int
}

func NewStatsHandler(tracker *quota.Tracker, maxPrompts int) Handler {
	return &statsHandler{
		tracker:    tracker,
		maxPrompts: maxPrompts,
	}
}

func (s *statsHandler) Handle(c *fiber.Ctx) error {
	used, windowStart := s.tracker.Usage()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"promptsUsed": used,
		"maxPrompts":  s.maxPrompts,
		"remaining":   s.tracker.Remaining(s.maxPrompts),
		"weekStart":   windowStart.Format(time.RFC3339),
	})
}
