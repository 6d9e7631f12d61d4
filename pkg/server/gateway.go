package server

import (
	"fmt"

	"github.com/glowlabs-ai/promptgate/pkg/config"
	handlers "github.com/glowlabs-ai/promptgate/pkg/handlers/http"
	"github.com/glowlabs-ai/promptgate/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type (
	GatewayServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	GatewayServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewGatewayServer(di GatewayServerDI) *GatewayServer {
	return &GatewayServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *GatewayServer) Run() error {
	s.setupMiddleware()
	s.setupRoutes()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("Starting gateway server")
	return s.router.Listen(addr)
}

func (s *GatewayServer) setupMiddleware() {
	s.router.Use(s.middlewareTransport.PanicRecoverMiddleware.Middleware())
	s.router.Use(s.middlewareTransport.CORSMiddleware.Middleware())
	s.router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())
}

func (s *GatewayServer) setupRoutes() {
	api := s.router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.Post("/new", s.handlerTransport.CreateSessionHandler.Handle)
			user.Get("/:user_id/history", s.handlerTransport.GetHistoryHandler.Handle)
		}

		api.Post("/chat", s.handlerTransport.ChatHandler.Handle)
		api.Get("/stats", s.handlerTransport.StatsHandler.Handle)
		api.Get("/health", s.handlerTransport.HealthHandler.Handle)
	}
}

// Shutdown stops both listeners. A metrics shutdown failure is logged but
// does not block the main router from closing.
func (s *GatewayServer) Shutdown() error {
	if s.metricsApp != nil {
		if err := s.metricsApp.Shutdown(); err != nil {
			s.logger.WithError(err).Error("failed to stop metrics listener")
		}
	}
	return s.router.Shutdown()
}
