package http

import (
	"github.com/glowlabs-ai/promptgate/pkg/domain"
	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getHistoryHandler struct {
	logger   *logrus.Logger
	sessions conversation.Repository
}

func NewGetHistoryHandler(logger *logrus.Logger, sessions conversation.Repository) Handler {
	return &getHistoryHandler{
		logger:   logger,
		sessions: sessions,
	}
}

func (s *getHistoryHandler) Handle(c *fiber.Ctx) error {
	sessionID := c.Params("user_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user id is required",
			"code":  "invalid_request",
		})
	}

	sess, err := s.sessions.Get(c.Context(), sessionID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "session not found",
				"code":  "session_not_found",
			})
		}
		s.logger.WithError(err).WithField("session_id", sessionID).Error("failed to get session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get session",
			"code":  "internal_error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"history": sess.Messages})
}
