package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/domain"
	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/glowlabs-ai/promptgate/pkg/infra/httpx"
	"github.com/glowlabs-ai/promptgate/pkg/infra/prometheus"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers"
	"github.com/glowlabs-ai/promptgate/pkg/infra/quota"
	"github.com/sirupsen/logrus"
)

type Result struct {
	Response         string
	PromptsRemaining int
}

// Completer orchestrates a chat exchange: session lookup, quota
// enforcement, context assembly, the provider call, and history update.
//
// Quota is charged on attempt: the counter is incremented before the
// provider call, so an upstream failure still consumes a unit. The quota
// lock is released before the network round trip begins.
type Completer struct {
	logger       *logrus.Logger
	sessions     conversation.Repository
	quota        *quota.Tracker
	provider     providers.Client
	providerName string
	providerCfg  providers.Config
	breaker      httpx.CircuitBreaker
	systemPrompt string
	maxPrompts   int
}

func NewCompleter(
	logger *logrus.Logger,
	sessions conversation.Repository,
	tracker *quota.Tracker,
	provider providers.Client,
	providerName string,
	providerCfg providers.Config,
	breaker httpx.CircuitBreaker,
	systemPrompt string,
	maxPrompts int,
) *Completer {
	return &Completer{
		logger:       logger,
		sessions:     sessions,
		quota:        tracker,
		provider:     provider,
		providerName: providerName,
		providerCfg:  providerCfg,
		breaker:      breaker,
		systemPrompt: systemPrompt,
		maxPrompts:   maxPrompts,
	}
}

func (c *Completer) Complete(ctx context.Context, sessionID, message string) (*Result, error) {
	if sessionID == "" || strings.TrimSpace(message) == "" {
		return nil, domain.ErrInvalidRequest
	}

	sess, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !c.quota.TryConsume(c.maxPrompts) {
		c.logger.WithField("session_id", sessionID).Warn("chat request rejected, quota exhausted")
		return nil, domain.ErrQuotaExceeded
	}
	prometheus.QuotaRemaining.Set(float64(c.quota.Remaining(c.maxPrompts)))

	messages := c.assembleContext(sess, message)

	completion, err := c.invoke(ctx, messages)
	if err != nil {
		return nil, err
	}

	prometheus.UpstreamTokens.WithLabelValues(c.providerName, "prompt").
		Add(float64(completion.Usage.PromptTokens))
	prometheus.UpstreamTokens.WithLabelValues(c.providerName, "completion").
		Add(float64(completion.Usage.CompletionTokens))
	c.logger.WithFields(logrus.Fields{
		"session_id":    sessionID,
		"completion_id": completion.ID,
		"total_tokens":  completion.Usage.Total(),
	}).Debug("completion received")

	userMsg := conversation.Message{Role: conversation.RoleUser, Content: message}
	assistantMsg := conversation.Message{Role: conversation.RoleAssistant, Content: completion.Response}
	if err := c.sessions.Append(ctx, sessionID, userMsg, assistantMsg); err != nil {
		c.logger.WithError(err).WithField("session_id", sessionID).Error("failed to persist exchange")
		return nil, err
	}

	return &Result{
		Response:         completion.Response,
		PromptsRemaining: c.quota.Remaining(c.maxPrompts),
	}, nil
}

// assembleContext builds [system instruction] ++ [history] ++ [new user
// message]. History is already bounded by the store; the fresh message is
// always included.
func (c *Completer) assembleContext(sess *conversation.Session, message string) []conversation.Message {
	messages := make([]conversation.Message, 0, len(sess.Messages)+2)
	messages = append(messages, conversation.Message{
		Role:    conversation.RoleSystem,
		Content: c.systemPrompt,
	})
	messages = append(messages, sess.Messages...)
	messages = append(messages, conversation.Message{
		Role:    conversation.RoleUser,
		Content: message,
	})
	return messages
}

func (c *Completer) invoke(ctx context.Context, messages []conversation.Message) (*providers.CompletionResponse, error) {
	var completion *providers.CompletionResponse

	start := time.Now()
	err := c.breaker.Execute(func() error {
		var askErr error
		completion, askErr = c.provider.Ask(ctx, &c.providerCfg, messages)
		return askErr
	})
	prometheus.UpstreamLatency.
		WithLabelValues(c.providerName, outcomeLabel(err)).
		Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		return nil, c.classify(err)
	}
	return completion, nil
}

func (c *Completer) classify(err error) error {
	switch {
	case errors.Is(err, providers.ErrAuthFailure):
		c.logger.WithError(err).Error("provider credential rejected")
		return domain.ErrServerMisconfigured
	case errors.Is(err, providers.ErrRateLimited):
		c.logger.WithError(err).Warn("provider rate limited")
		return domain.ErrUpstreamBusy
	default:
		c.logger.WithError(err).Error("provider call failed")
		return domain.ErrUpstreamUnavailable
	}
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
