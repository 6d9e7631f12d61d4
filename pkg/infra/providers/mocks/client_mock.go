package mocks

import (
	"context"

	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) Ask(
	ctx context.Context,
	config *providers.Config,
	messages []conversation.Message,
) (*providers.CompletionResponse, error) {
	args := m.Called(ctx, config, messages)
	resp, _ := args.Get(0).(*providers.CompletionResponse)
	return resp, args.Error(1)
}
