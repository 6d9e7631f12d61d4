package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/app/chat"
	"github.com/glowlabs-ai/promptgate/pkg/config"
	handlers "github.com/glowlabs-ai/promptgate/pkg/handlers/http"
	"github.com/glowlabs-ai/promptgate/pkg/infra/httpx"
	infraLogger "github.com/glowlabs-ai/promptgate/pkg/infra/logger"
	"github.com/glowlabs-ai/promptgate/pkg/infra/memstore"
	"github.com/glowlabs-ai/promptgate/pkg/infra/prometheus"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers/factory"
	"github.com/glowlabs-ai/promptgate/pkg/infra/quota"
	"github.com/glowlabs-ai/promptgate/pkg/middleware"
	"github.com/glowlabs-ai/promptgate/pkg/server"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.WithError(err).Warn("config file not loaded")
	}
	cfg := config.GetConfig()

	// Fail fast: refuse to serve anything without a provider credential.
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	prometheus.Initialize()

	sessionRepository := memstore.NewSessionRepository(logger, cfg.Session.MaxHistory, cfg.Session.TTL)
	tracker := quota.NewTracker(cfg.Quota.Window)

	providerLocator := factory.NewProviderLocator()
	providerClient, err := providerLocator.Get(cfg.Provider.Name)
	if err != nil {
		logger.Fatalf("failed to initialize provider: %v", err)
	}

	providerCfg := providers.Config{
		Credentials: providers.Credentials{ApiKey: cfg.Provider.APIKey},
		Model:       cfg.Provider.Model,
		MaxTokens:   cfg.Provider.MaxTokens,
		Temperature: cfg.Provider.Temperature,
		Timeout:     cfg.Provider.Timeout,
	}

	breaker := httpx.NewCircuitBreaker("inference", 30*time.Second, 5)

	completer := chat.NewCompleter(
		logger,
		sessionRepository,
		tracker,
		providerClient,
		cfg.Provider.Name,
		providerCfg,
		breaker,
		cfg.Provider.SystemPrompt,
		cfg.Quota.MaxPrompts,
	)

	middlewareTransport := middleware.Transport{
		CORSMiddleware: middleware.NewCORSGlobalMiddleware(
			allowedOrigins(cfg),
			[]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(logger),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
	}

	handlerTransport := handlers.HandlerTransport{
		CreateSessionHandler: handlers.NewCreateSessionHandler(logger, sessionRepository),
		GetHistoryHandler:    handlers.NewGetHistoryHandler(logger, sessionRepository),
		ChatHandler:          handlers.NewChatHandler(logger, completer),
		StatsHandler:         handlers.NewStatsHandler(tracker, cfg.Quota.MaxPrompts),
		HealthHandler:        handlers.NewHealthHandler(tracker, cfg.Quota.MaxPrompts),
	}

	srv := server.NewGatewayServer(server.GatewayServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	sessionRepository.Stop()
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}

func allowedOrigins(cfg *config.Config) []string {
	if cfg.Server.AllowedOrigin == "" {
		return []string{"*"}
	}
	return []string{cfg.Server.AllowedOrigin}
}
