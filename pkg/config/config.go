package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/common"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Provider ProviderConfig `mapstructure:"provider"`
	Quota    QuotaConfig    `mapstructure:"quota"`
	Session  SessionConfig  `mapstructure:"session"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	MetricsPort   int    `mapstructure:"metrics_port"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

type ProviderConfig struct {
	Name         string        `mapstructure:"name"`
	Model        string        `mapstructure:"model"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Temperature  float64       `mapstructure:"temperature"`
	SystemPrompt string        `mapstructure:"system_prompt"`
	Timeout      time.Duration `mapstructure:"timeout"`

	// APIKey is only ever read from the environment, never from the
	// config file.
	APIKey string `mapstructure:"-"`
}

type QuotaConfig struct {
	MaxPrompts int           `mapstructure:"max_prompts"`
	Window     time.Duration `mapstructure:"window"`
}

type SessionConfig struct {
	MaxHistory int `mapstructure:"max_history"`
	// TTL evicts sessions idle longer than this. Zero disables eviction.
	TTL time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var globalConfig Config

func Load(configPath string) error {
	err := loadConfigFile(configPath, "config", &globalConfig)

	// Defaults and credentials apply even without a config file on disk;
	// an env-only deployment is a supported startup path.
	setDefaultValues()
	loadCredentials()

	if err != nil {
		return fmt.Errorf("⚠️ Warning: Could not load main config file: %v", err)
	}
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Provider.Name == "" {
		globalConfig.Provider.Name = "anthropic"
	}
	if globalConfig.Provider.MaxTokens == 0 {
		globalConfig.Provider.MaxTokens = 1024
	}
	if globalConfig.Provider.Timeout == 0 {
		globalConfig.Provider.Timeout = 60 * time.Second
	}
	if globalConfig.Provider.SystemPrompt == "" {
		globalConfig.Provider.SystemPrompt = common.DefaultSystemPrompt
	}
	if globalConfig.Quota.MaxPrompts == 0 {
		globalConfig.Quota.MaxPrompts = common.DefaultMaxPrompts
	}
	if globalConfig.Quota.Window == 0 {
		globalConfig.Quota.Window = common.DefaultQuotaWindow
	}
	if globalConfig.Session.MaxHistory == 0 {
		globalConfig.Session.MaxHistory = common.MaxHistory
	}
}

func loadCredentials() {
	switch globalConfig.Provider.Name {
	case "openai":
		globalConfig.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
	default:
		globalConfig.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

// Validate enforces the fail-fast startup contract: the process must not
// accept requests without a provider credential.
func (c *Config) Validate() error {
	if c.Provider.APIKey == "" {
		switch c.Provider.Name {
		case "openai":
			return errors.New("OPENAI_API_KEY is required")
		default:
			return errors.New("ANTHROPIC_API_KEY is required")
		}
	}
	if c.Provider.Name != "anthropic" && c.Provider.Name != "openai" {
		return fmt.Errorf("unsupported provider: %s", c.Provider.Name)
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
