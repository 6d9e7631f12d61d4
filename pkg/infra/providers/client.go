package providers

import (
	"context"
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
)

type Config struct {
	Credentials Credentials   `json:"credentials"`
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty"`
}

type Credentials struct {
	ApiKey string `json:"api_key"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client is a transport and classification layer only: it sends the
// message sequence as-is, performs no retries, and maps every failure to
// one of the classified errors in errors.go.
type Client interface {
	Ask(ctx context.Context, config *Config, messages []conversation.Message) (*CompletionResponse, error)
}
