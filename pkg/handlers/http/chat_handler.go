package http

import (
	"errors"

	"github.com/glowlabs-ai/promptgate/pkg/app/chat"
	"github.com/glowlabs-ai/promptgate/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type chatHandler struct {
	logger    *logrus.Logger
	completer *chat.Completer
}

func NewChatHandler(logger *logrus.Logger, completer *chat.Completer) Handler {
	return &chatHandler{
		logger:    logger,
		completer: completer,
	}
}

func (s *chatHandler) Handle(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
			"code":  "invalid_request",
		})
	}

	result, err := s.completer.Complete(c.Context(), req.UserID, req.Message)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"response":         result.Response,
		"promptsRemaining": result.PromptsRemaining,
	})
}

// mapError translates the closed error taxonomy into the HTTP surface.
// Provider errors never reach the client raw; the generic messages below
// carry no credential or upstream payload.
func (s *chatHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId and message are required",
			"code":  "invalid_request",
		})
	case domain.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
			"code":  "session_not_found",
		})
	case errors.Is(err, domain.ErrQuotaExceeded):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "weekly prompt quota exceeded",
			"code":  "quota_exceeded",
		})
	case errors.Is(err, domain.ErrServerMisconfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "server misconfigured",
			"code":  "server_misconfigured",
		})
	case errors.Is(err, domain.ErrUpstreamBusy):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "inference service is busy, try again later",
			"code":  "upstream_busy",
		})
	default:
		s.logger.WithError(err).Error("chat request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "inference service unavailable",
			"code":  "upstream_error",
		})
	}
}
