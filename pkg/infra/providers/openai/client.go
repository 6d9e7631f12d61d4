package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

type client struct{}

func NewOpenaiClient() providers.Client {
	return &client{}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	messages []conversation.Message,
) (*providers.CompletionResponse, error) {
	if config.Credentials.ApiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	openaiClient := openai.NewClient(option.WithAPIKey(config.Credentials.ApiKey))

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	var openaiMessages []openai.ChatCompletionMessageParamUnion
	for _, m := range messages {
		switch m.Role {
		case conversation.RoleSystem:
			openaiMessages = append(openaiMessages, openai.SystemMessage(m.Content))
		case conversation.RoleUser:
			openaiMessages = append(openaiMessages, openai.UserMessage(m.Content))
		case conversation.RoleAssistant:
			openaiMessages = append(openaiMessages, openai.AssistantMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    config.Model,
		Messages: openaiMessages,
	}

	if config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(config.MaxTokens))
	}

	if config.Temperature > 0 {
		params.Temperature = openai.Float(config.Temperature)
	}

	resp, err := openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no completions returned", providers.ErrUnavailable)
	}

	return &providers.CompletionResponse{
		ID:       resp.ID,
		Model:    resp.Model,
		Response: resp.Choices[0].Message.Content,
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: upstream status %d", providers.ClassifyStatus(apiErr.StatusCode), apiErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", providers.ErrUnavailable)
	}
	return fmt.Errorf("%w: openAI request failed", providers.ErrUnavailable)
}
