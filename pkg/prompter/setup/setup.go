package setup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NethermindEth/art-prompter/pkg/prompter/credentials"
	"github.com/NethermindEth/art-prompter/pkg/prompter/debug"
)

type SetupResult struct {
	ApiIpPort        string
	OpenAiModel      string
	OpenAiBaseUrl    string
	BatchConcurrency int
	HistorySize      int
	HistoryTTL       time.Duration
}

func Setup(ctx context.Context) (*SetupResult, error) {
	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get config from env: %w", err)
	}

	setupResult := newSetupResult(config)

	if _, ok := (credentials.Env{}).Lookup(credentials.OpenAiApiKey); !ok {
		slog.Warn("openai api key is not set, delegated generation will be unavailable", "env", credentials.OpenAiApiKey)
	}

	if debug.IsDebugShowSetup() {
		slog.Info("setup output", "setupOutput", setupResult)
	}

	return setupResult, nil
}

func newSetupResult(config *Config) *SetupResult {
	return &SetupResult{
		ApiIpPort:        config.ApiIpPort,
		OpenAiModel:      config.OpenAiModel,
		OpenAiBaseUrl:    config.OpenAiBaseUrl,
		BatchConcurrency: config.BatchConcurrency,
		HistorySize:      config.HistorySize,
		HistoryTTL:       config.HistoryTTL,
	}
}
