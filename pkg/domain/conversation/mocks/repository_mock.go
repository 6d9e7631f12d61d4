package mocks

import (
	"context"

	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context) (*conversation.Session, error) {
	args := m.Called(ctx)
	sess, _ := args.Get(0).(*conversation.Session)
	return sess, args.Error(1)
}

func (m *Repository) Get(ctx context.Context, id string) (*conversation.Session, error) {
	args := m.Called(ctx, id)
	sess, _ := args.Get(0).(*conversation.Session)
	return sess, args.Error(1)
}

func (m *Repository) Append(ctx context.Context, id string, user, assistant conversation.Message) error {
	args := m.Called(ctx, id, user, assistant)
	return args.Error(0)
}
