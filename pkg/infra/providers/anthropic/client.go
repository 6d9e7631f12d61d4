package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers"
)

type client struct{}

func NewAnthropicClient() providers.Client {
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

	anthropicClient := anthropic.NewClient(option.WithAPIKey(config.Credentials.ApiKey))

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	model := anthropic.ModelClaudeHaiku4_5
	if config.Model != "" {
		model = anthropic.Model(config.Model)
	}

	var system string
	var anthropicMessages []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case conversation.RoleSystem:
			if system == "" {
				system = m.Content
			}
		case conversation.RoleUser:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(m.Content),
			))
		case conversation.RoleAssistant:
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(m.Content),
			))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  anthropicMessages,
		MaxTokens: int64(config.MaxTokens),
	}

	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system, Type: "text"},
		}
	}

	if config.Temperature > 0 {
		params.Temperature = anthropic.Float(config.Temperature)
	}

	message, err := anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyError(err)
	}

	var responseText string
	for _, content := range message.Content {
		if content.Type == "text" {
			responseText = content.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("%w: no text content returned", providers.ErrUnavailable)
	}

	return &providers.CompletionResponse{
		ID:       message.ID,
		Model:    string(model),
		Response: responseText,
		Usage: providers.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}

// classifyError collapses SDK failures into the closed error set. The raw
// upstream payload is intentionally not carried along.
func classifyError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: upstream status %d", providers.ClassifyStatus(apiErr.StatusCode), apiErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", providers.ErrUnavailable)
	}
	return fmt.Errorf("%w: anthropic request failed", providers.ErrUnavailable)
}
