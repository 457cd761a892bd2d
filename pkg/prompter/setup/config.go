package setup

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment. The OpenAI API key is not part of it:
// the composer looks it up on every delegated call.
type Config struct {
	ApiIpPort        string        `env:"PROMPTER_API_IP_PORT" envDefault:":8080"`
	OpenAiModel      string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo-instruct"`
	OpenAiBaseUrl    string        `env:"OPENAI_BASE_URL"`
	BatchConcurrency int           `env:"PROMPTER_BATCH_CONCURRENCY" envDefault:"4"`
	HistorySize      int           `env:"PROMPTER_HISTORY_SIZE" envDefault:"100"`
	HistoryTTL       time.Duration `env:"PROMPTER_HISTORY_TTL" envDefault:"1h"`
}

func NewConfigFromEnv() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.OpenAiModel == "" {
		return errors.New("OPENAI_MODEL must not be empty")
	}
	if c.BatchConcurrency <= 0 {
		return errors.New("PROMPTER_BATCH_CONCURRENCY must be positive")
	}
	if c.HistorySize <= 0 {
		return errors.New("PROMPTER_HISTORY_SIZE must be positive")
	}
	if c.HistoryTTL <= 0 {
		return errors.New("PROMPTER_HISTORY_TTL must be positive")
	}

	return nil
}
