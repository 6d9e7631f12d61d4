package middleware

import (
	"fmt"
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		elapsed := time.Since(start)
		// Route pattern, not the raw path, to keep label cardinality bounded.
		path := c.Route().Path
		statusClass := fmt.Sprintf("%dxx", c.Response().StatusCode()/100)

		prometheus.RequestTotal.WithLabelValues(c.Method(), path, statusClass).Inc()
		prometheus.RequestLatency.WithLabelValues(path).Observe(float64(elapsed.Milliseconds()))

		return err
	}
}
