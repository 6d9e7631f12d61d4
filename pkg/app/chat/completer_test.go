package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/app/chat"
	"github.com/glowlabs-ai/promptgate/pkg/domain"
	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	convMocks "github.com/glowlabs-ai/promptgate/pkg/domain/conversation/mocks"
	"github.com/glowlabs-ai/promptgate/pkg/infra/httpx"
	metrics "github.com/glowlabs-ai/promptgate/pkg/infra/prometheus"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers"
	providerMocks "github.com/glowlabs-ai/promptgate/pkg/infra/providers/mocks"
	"github.com/glowlabs-ai/promptgate/pkg/infra/quota"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const systemPrompt = "you are a test assistant"

func newCompleter(
	sessions conversation.Repository,
	tracker *quota.Tracker,
	provider providers.Client,
	maxPrompts int,
) *chat.Completer {
	return chat.NewCompleter(
		logrus.New(),
		sessions,
		tracker,
		provider,
		"anthropic",
		providers.Config{Credentials: providers.Credentials{ApiKey: "test-key"}, Model: "test-model"},
		httpx.NewCircuitBreaker("test", time.Minute, 100),
		systemPrompt,
		maxPrompts,
	)
}

func existingSession(history ...conversation.Message) *conversation.Session {
	return &conversation.Session{ID: "sess-1", Messages: history}
}

func TestComplete_EmptyMessage(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	completer := newCompleter(repo, quota.NewTracker(time.Hour), provider, 10)

	_, err := completer.Complete(context.Background(), "sess-1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = completer.Complete(context.Background(), "", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	provider.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
}

func TestComplete_UnknownSession(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	tracker := quota.NewTracker(time.Hour)
	completer := newCompleter(repo, tracker, provider, 10)

	repo.On("Get", mock.Anything, "missing").Return(nil, domain.NewNotFoundError("session", "missing"))

	_, err := completer.Complete(context.Background(), "missing", "hello")
	assert.True(t, domain.IsNotFoundError(err))

	// Quota is only charged on attempts that reach invocation.
	assert.Equal(t, 10, tracker.Remaining(10))
	provider.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
}

func TestComplete_QuotaExhausted(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	tracker := quota.NewTracker(time.Hour)
	completer := newCompleter(repo, tracker, provider, 1)

	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(), nil)
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(&providers.CompletionResponse{Response: "hi"}, nil)
	repo.On("Append", mock.Anything, "sess-1", mock.Anything, mock.Anything).Return(nil)

	result, err := completer.Complete(context.Background(), "sess-1", "first")
	require.NoError(t, err)
	assert.Equal(t, 0, result.PromptsRemaining)

	_, err = completer.Complete(context.Background(), "sess-1", "second")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	// The rejected call made no upstream request and did not touch history.
	provider.AssertNumberOfCalls(t, "Ask", 1)
	repo.AssertNumberOfCalls(t, "Append", 1)
}

func TestComplete_ContextAssemblyOrder(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	completer := newCompleter(repo, quota.NewTracker(time.Hour), provider, 10)

	history := []conversation.Message{
		{Role: conversation.RoleUser, Content: "earlier question"},
		{Role: conversation.RoleAssistant, Content: "earlier answer"},
	}
	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(history...), nil)
	repo.On("Append", mock.Anything, "sess-1", mock.Anything, mock.Anything).Return(nil)

	var captured []conversation.Message
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]conversation.Message)
		}).
		Return(&providers.CompletionResponse{Response: "reply"}, nil)

	_, err := completer.Complete(context.Background(), "sess-1", "new question")
	require.NoError(t, err)

	require.Len(t, captured, 4)
	assert.Equal(t, conversation.Message{Role: conversation.RoleSystem, Content: systemPrompt}, captured[0])
	assert.Equal(t, history[0], captured[1])
	assert.Equal(t, history[1], captured[2])
	assert.Equal(t, conversation.Message{Role: conversation.RoleUser, Content: "new question"}, captured[3])
}

func TestComplete_PersistsExchange(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	completer := newCompleter(repo, quota.NewTracker(time.Hour), provider, 10)

	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(), nil)
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(&providers.CompletionResponse{Response: "the reply"}, nil)
	repo.On("Append", mock.Anything, "sess-1",
		conversation.Message{Role: conversation.RoleUser, Content: "a question"},
		conversation.Message{Role: conversation.RoleAssistant, Content: "the reply"},
	).Return(nil)

	result, err := completer.Complete(context.Background(), "sess-1", "a question")
	require.NoError(t, err)
	assert.Equal(t, "the reply", result.Response)
	assert.Equal(t, 9, result.PromptsRemaining)
	repo.AssertExpectations(t)
}

func TestComplete_RecordsTokenUsage(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	completer := newCompleter(repo, quota.NewTracker(time.Hour), provider, 10)

	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(), nil)
	repo.On("Append", mock.Anything, "sess-1", mock.Anything, mock.Anything).Return(nil)
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(&providers.CompletionResponse{
			ID:       "cmpl-1",
			Response: "reply",
			Usage:    providers.Usage{PromptTokens: 7, CompletionTokens: 3},
		}, nil)

	promptBefore := testutil.ToFloat64(metrics.UpstreamTokens.WithLabelValues("anthropic", "prompt"))
	completionBefore := testutil.ToFloat64(metrics.UpstreamTokens.WithLabelValues("anthropic", "completion"))

	_, err := completer.Complete(context.Background(), "sess-1", "hello")
	require.NoError(t, err)

	assert.Equal(t, 7.0,
		testutil.ToFloat64(metrics.UpstreamTokens.WithLabelValues("anthropic", "prompt"))-promptBefore)
	assert.Equal(t, 3.0,
		testutil.ToFloat64(metrics.UpstreamTokens.WithLabelValues("anthropic", "completion"))-completionBefore)
}

func TestComplete_AuthFailureChargesQuota(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	tracker := quota.NewTracker(time.Hour)
	completer := newCompleter(repo, tracker, provider, 5)

	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(), nil)
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, providers.ErrAuthFailure)

	_, err := completer.Complete(context.Background(), "sess-1", "hello")
	assert.ErrorIs(t, err, domain.ErrServerMisconfigured)

	// Charge on attempt: the failed call still consumed a unit.
	assert.Equal(t, 4, tracker.Remaining(5))
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComplete_RateLimitedUpstream(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	completer := newCompleter(repo, quota.NewTracker(time.Hour), provider, 5)

	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(), nil)
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, providers.ErrRateLimited)

	_, err := completer.Complete(context.Background(), "sess-1", "hello")
	assert.ErrorIs(t, err, domain.ErrUpstreamBusy)
}

func TestComplete_UnavailableUpstream(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	completer := newCompleter(repo, quota.NewTracker(time.Hour), provider, 5)

	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(), nil)
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, providers.ErrUnavailable)

	_, err := completer.Complete(context.Background(), "sess-1", "hello")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestComplete_OpenBreakerMapsToUnavailable(t *testing.T) {
	repo := new(convMocks.Repository)
	provider := new(providerMocks.Client)
	tracker := quota.NewTracker(time.Hour)

	// Trip the breaker after two consecutive failures.
	completer := chat.NewCompleter(
		logrus.New(),
		repo,
		tracker,
		provider,
		"anthropic",
		providers.Config{Credentials: providers.Credentials{ApiKey: "test-key"}},
		httpx.NewCircuitBreaker("test-open", time.Minute, 2),
		systemPrompt,
		100,
	)

	repo.On("Get", mock.Anything, "sess-1").Return(existingSession(), nil)
	provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, providers.ErrUnavailable)

	for i := 0; i < 2; i++ {
		_, err := completer.Complete(context.Background(), "sess-1", "hello")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	}

	// Breaker is now open; the provider is not called again.
	_, err := completer.Complete(context.Background(), "sess-1", "hello")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	provider.AssertNumberOfCalls(t, "Ask", 2)
}
