package http

import (
	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createSessionHandler struct {
	logger   *logrus.Logger
	sessions conversation.Repository
}

func NewCreateSessionHandler(logger *logrus.Logger, sessions conversation.Repository) Handler {
	return &createSessionHandler{
		logger:   logger,
		sessions: sessions,
	}
}

func (s *createSessionHandler) Handle(c *fiber.Ctx) error {
	sess, err := s.sessions.Create(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to create session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create session",
			"code":  "internal_error",
		})
	}

	s.logger.WithField("session_id", sess.ID).Debug("session created")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"userId": sess.ID})
}
