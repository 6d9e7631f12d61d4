package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownProviders(t *testing.T) {
	locator := NewProviderLocator()

	for _, name := range []string{ProviderAnthropic, ProviderOpenAI} {
		client, err := locator.Get(name)
		require.NoError(t, err, "provider %s", name)
		assert.NotNil(t, client)
	}
}

func TestGet_UnsupportedProvider(t *testing.T) {
	locator := NewProviderLocator()

	client, err := locator.Get("bedrock")
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "unsupported provider")
}
