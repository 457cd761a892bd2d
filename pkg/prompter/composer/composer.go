package composer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
	"github.com/NethermindEth/art-prompter/pkg/prompter/completion"
	"github.com/NethermindEth/art-prompter/pkg/prompter/credentials"
)

const (
	DelegatedTemperature = 0.8
	DelegatedMaxTokens   = 50
	DelegatedSamples     = 1
)

type Mode string

const (
	ModeLocal     Mode = "local"
	ModeDelegated Mode = "delegated"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeLocal:
		return ModeLocal, nil
	case ModeDelegated:
		return ModeDelegated, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

type GeneratorFactory func(apiKey string) completion.Generator

type Config struct {
	Registry     *category.Registry
	Credentials  credentials.Source
	NewGenerator GeneratorFactory
	Rand         *rand.Rand
}

type Composer struct {
	registry     *category.Registry
	credentials  credentials.Source
	newGenerator GeneratorFactory

	rng   *rand.Rand
	rngMu sync.Mutex
}

func New(config Config) (*Composer, error) {
	if config.Registry == nil {
		return nil, errors.New("registry is nil")
	}

	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Composer{
		registry:     config.Registry,
		credentials:  config.Credentials,
		newGenerator: config.NewGenerator,
		rng:          rng,
	}, nil
}

func (c *Composer) Registry() *category.Registry {
	return c.registry
}

// RandomSelection samples a fresh selection from the registry.
func (c *Composer) RandomSelection() category.Selection {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	return c.registry.Random(c.rng)
}

// ComposeLocal samples its own selection and never fails.
func (c *Composer) ComposeLocal() string {
	prompt, _ := c.ComposeLocalWithSelection()
	return prompt
}

// ComposeLocalWithSelection is ComposeLocal that also reports the sampled
// selection.
func (c *Composer) ComposeLocalWithSelection() (string, category.Selection) {
	sel := c.RandomSelection()
	return LocalPromptText(sel), sel
}

func (c *Composer) ComposeDelegated(ctx context.Context, sel category.Selection) (string, error) {
	apiKey, err := c.apiKey()
	if err != nil {
		return "", err
	}

	if c.newGenerator == nil {
		return "", fmt.Errorf("%w: no text generator configured", ErrConfigurationMissing)
	}

	completions, err := c.newGenerator(apiKey).Complete(ctx, completion.Request{
		Prompt:      DelegatedRequestText(sel),
		MaxTokens:   DelegatedMaxTokens,
		N:           DelegatedSamples,
		Temperature: DelegatedTemperature,
		Stop:        nil,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExternalGenerationFailure, err)
	}

	if len(completions) == 0 {
		return "", fmt.Errorf("%w: no completion returned", ErrExternalGenerationFailure)
	}

	text := strings.TrimSpace(completions[0])
	if text == "" {
		return "", fmt.Errorf("%w: empty completion returned", ErrExternalGenerationFailure)
	}

	return text, nil
}

// Compose dispatches on mode. The selection is ignored in local mode.
func (c *Composer) Compose(ctx context.Context, mode Mode, sel category.Selection) (string, error) {
	switch mode {
	case ModeLocal:
		return c.ComposeLocal(), nil
	case ModeDelegated:
		return c.ComposeDelegated(ctx, sel)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func (c *Composer) apiKey() (string, error) {
	if c.credentials == nil {
		return "", fmt.Errorf("%w: no credential source", ErrConfigurationMissing)
	}

	apiKey, ok := c.credentials.Lookup(credentials.OpenAiApiKey)
	if !ok || strings.TrimSpace(apiKey) == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrConfigurationMissing, credentials.OpenAiApiKey)
	}

	return apiKey, nil
}
