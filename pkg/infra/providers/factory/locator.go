package factory

import (
	"fmt"

	"github.com/glowlabs-ai/promptgate/pkg/infra/providers"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers/anthropic"
	"github.com/glowlabs-ai/promptgate/pkg/infra/providers/openai"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct{}

func NewProviderLocator() ProviderLocator {
	return &providerLocator{}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	switch provider {
	case ProviderAnthropic:
		return anthropic.NewAnthropicClient(), nil
	case ProviderOpenAI:
		return openai.NewOpenaiClient(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
