package prompter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gin-gonic/gin"

	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
	"github.com/NethermindEth/art-prompter/pkg/prompter/completion"
	"github.com/NethermindEth/art-prompter/pkg/prompter/composer"
	"github.com/NethermindEth/art-prompter/pkg/prompter/credentials"
	"github.com/NethermindEth/art-prompter/pkg/prompter/setup"
)

type Prompter struct {
	composer  *composer.Composer
	history   *History
	batchPool pond.ResultPool[GeneratedPrompt]
	apiRouter *gin.Engine
	now       func() time.Time

	apiIpPort string
}

type PrompterConfig struct {
	Composer *composer.Composer
	Now      func() time.Time

	ApiIpPort        string
	BatchConcurrency int
	HistorySize      int
	HistoryTTL       time.Duration
}

type GeneratedPrompt struct {
	Mode      composer.Mode      `json:"mode"`
	Selection category.Selection `json:"selection"`
	Prompt    string             `json:"prompt"`
	CreatedAt time.Time          `json:"createdAt"`
}

const (
	defaultBatchConcurrency = 4
	defaultHistorySize      = 100
	defaultHistoryTTL       = 1 * time.Hour
	MaxBatchSize            = 10
)

func NewPrompter(ctx context.Context, config *PrompterConfig) (*Prompter, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if config.Composer == nil {
		return nil, errors.New("composer is nil")
	}

	batchConcurrency := config.BatchConcurrency
	if batchConcurrency <= 0 {
		batchConcurrency = defaultBatchConcurrency
	}
	historySize := config.HistorySize
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	historyTTL := config.HistoryTTL
	if historyTTL <= 0 {
		historyTTL = defaultHistoryTTL
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	prompter := &Prompter{
		composer:  config.Composer,
		history:   NewHistory(historySize, historyTTL),
		batchPool: pond.NewResultPool[GeneratedPrompt](batchConcurrency, pond.WithContext(ctx)),
		apiRouter: nil,
		now:       now,

		apiIpPort: config.ApiIpPort,
	}

	prompter.apiRouter = prompter.generateRouter()

	return prompter, nil
}

func NewPrompterConfigFromSetupResult(setupResult *setup.SetupResult) (*PrompterConfig, error) {
	if setupResult == nil {
		return nil, errors.New("setup result is nil")
	}

	promptComposer, err := NewComposerFromSetupResult(setupResult, credentials.Env{})
	if err != nil {
		return nil, fmt.Errorf("failed to create composer: %w", err)
	}

	return &PrompterConfig{
		Composer: promptComposer,

		ApiIpPort:        setupResult.ApiIpPort,
		BatchConcurrency: setupResult.BatchConcurrency,
		HistorySize:      setupResult.HistorySize,
		HistoryTTL:       setupResult.HistoryTTL,
	}, nil
}

// NewComposerFromSetupResult builds a composer over the default registry that
// generates through OpenAI with the configured model.
func NewComposerFromSetupResult(setupResult *setup.SetupResult, source credentials.Source) (*composer.Composer, error) {
	if setupResult == nil {
		return nil, errors.New("setup result is nil")
	}

	return composer.New(composer.Config{
		Registry:    category.Default(),
		Credentials: source,
		NewGenerator: func(apiKey string) completion.Generator {
			return completion.NewOpenAiGeneratorWithConfig(apiKey, setupResult.OpenAiModel, setupResult.OpenAiBaseUrl)
		},
	})
}

// Generate composes one prompt and records it in the history. In local mode
// sel is ignored and a fresh selection is sampled.
func (p *Prompter) Generate(ctx context.Context, mode composer.Mode, sel category.Selection) (GeneratedPrompt, error) {
	switch mode {
	case composer.ModeLocal:
		prompt, sampled := p.composer.ComposeLocalWithSelection()
		return p.record(mode, sampled, prompt), nil
	case composer.ModeDelegated:
		if err := p.composer.Registry().Validate(sel); err != nil {
			return GeneratedPrompt{}, err
		}

		prompt, err := p.composer.ComposeDelegated(ctx, sel)
		if err != nil {
			if errors.Is(err, composer.ErrConfigurationMissing) {
				slog.Warn("delegated generation is not configured", "error", err)
			} else {
				slog.Error("failed to generate delegated prompt", "error", err, "selection", sel)
			}
			return GeneratedPrompt{}, err
		}

		return p.record(mode, sel, prompt), nil
	default:
		return GeneratedPrompt{}, fmt.Errorf("%w: %q", composer.ErrUnknownMode, mode)
	}
}

func (p *Prompter) record(mode composer.Mode, sel category.Selection, prompt string) GeneratedPrompt {
	generated := GeneratedPrompt{
		Mode:      mode,
		Selection: sel,
		Prompt:    prompt,
		CreatedAt: p.now(),
	}
	p.history.Add(generated)

	return generated
}

func (p *Prompter) Categories() category.Categories {
	return p.composer.Registry().Categories()
}

func (p *Prompter) Recent() []GeneratedPrompt {
	return p.history.List()
}

func (p *Prompter) ApiIpPort() string {
	return p.apiIpPort
}
