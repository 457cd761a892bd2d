package prompter_test

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/art-prompter/pkg/prompter"
	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
	"github.com/NethermindEth/art-prompter/pkg/prompter/completion"
	"github.com/NethermindEth/art-prompter/pkg/prompter/composer"
	"github.com/NethermindEth/art-prompter/pkg/prompter/credentials"
	"github.com/NethermindEth/art-prompter/pkg/prompter/setup"
)

var fixedNow = time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)

var natureSelection = category.Selection{Theme: "Nature", Technique: "Watercolor", Style: "Impressionism"}

type mockGenerator struct {
	complete func(ctx context.Context, req completion.Request) ([]string, error)
}

func (m *mockGenerator) Complete(ctx context.Context, req completion.Request) ([]string, error) {
	return m.complete(ctx, req)
}

type testComposerConfig struct {
	credentials credentials.Source
	complete    func(ctx context.Context, req completion.Request) ([]string, error)
}

func newTestComposer(t *testing.T, opts ...func(*testComposerConfig)) *composer.Composer {
	config := &testComposerConfig{
		credentials: credentials.Static{credentials.OpenAiApiKey: "test-key"},
		complete: func(ctx context.Context, req completion.Request) ([]string, error) {
			return []string{"  A luminous forest at dawn.  "}, nil
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	c, err := composer.New(composer.Config{
		Registry:    category.Default(),
		Credentials: config.credentials,
		NewGenerator: func(apiKey string) completion.Generator {
			return &mockGenerator{complete: config.complete}
		},
		Rand: rand.New(rand.NewPCG(3, 5)),
	})
	require.NoError(t, err)
	return c
}

func setupTestPrompter(t *testing.T, opts ...func(*prompter.PrompterConfig)) *prompter.Prompter {
	config := &prompter.PrompterConfig{
		Composer:         newTestComposer(t),
		Now:              func() time.Time { return fixedNow },
		ApiIpPort:        "",
		BatchConcurrency: 2,
		HistorySize:      5,
		HistoryTTL:       time.Hour,
	}

	for _, opt := range opts {
		opt(config)
	}

	p, err := prompter.NewPrompter(context.Background(), config)
	require.NoError(t, err)
	return p
}

func TestNewPrompter(t *testing.T) {
	tests := []struct {
		name           string
		prompterConfig *prompter.PrompterConfig
		wantErr        bool
	}{
		{
			name: "valid config",
			prompterConfig: &prompter.PrompterConfig{
				Composer:  newTestComposer(t),
				ApiIpPort: ":8080",
			},
			wantErr: false,
		},
		{
			name:           "nil config",
			prompterConfig: nil,
			wantErr:        true,
		},
		{
			name:           "nil composer",
			prompterConfig: &prompter.PrompterConfig{},
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := prompter.NewPrompter(context.Background(), tt.prompterConfig)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, p)
				assert.Equal(t, tt.prompterConfig.ApiIpPort, p.ApiIpPort())
				assert.NotNil(t, p.GetRouter())
			}
		})
	}
}

func TestNewPrompterConfigFromSetupResult(t *testing.T) {
	_, err := prompter.NewPrompterConfigFromSetupResult(nil)
	assert.Error(t, err)

	config, err := prompter.NewPrompterConfigFromSetupResult(&setup.SetupResult{
		ApiIpPort:        ":9000",
		OpenAiModel:      completion.DefaultModel,
		BatchConcurrency: 3,
		HistorySize:      7,
		HistoryTTL:       time.Minute,
	})
	require.NoError(t, err)

	assert.NotNil(t, config.Composer)
	assert.Equal(t, ":9000", config.ApiIpPort)
	assert.Equal(t, 3, config.BatchConcurrency)
	assert.Equal(t, 7, config.HistorySize)
	assert.Equal(t, time.Minute, config.HistoryTTL)
	assert.Equal(t, category.Default().Categories(), config.Composer.Registry().Categories())
}

func TestPrompter_Generate_Local(t *testing.T) {
	p := setupTestPrompter(t)

	generated, err := p.Generate(context.Background(), composer.ModeLocal, natureSelection)
	require.NoError(t, err)

	assert.Equal(t, composer.ModeLocal, generated.Mode)
	assert.Equal(t, composer.LocalPromptText(generated.Selection), generated.Prompt)
	assert.NoError(t, category.Default().Validate(generated.Selection))
	assert.Equal(t, fixedNow, generated.CreatedAt)
	assert.Equal(t, []prompter.GeneratedPrompt{generated}, p.Recent())
}

func TestPrompter_Generate_Delegated(t *testing.T) {
	p := setupTestPrompter(t)

	generated, err := p.Generate(context.Background(), composer.ModeDelegated, natureSelection)
	require.NoError(t, err)

	assert.Equal(t, prompter.GeneratedPrompt{
		Mode:      composer.ModeDelegated,
		Selection: natureSelection,
		Prompt:    "A luminous forest at dawn.",
		CreatedAt: fixedNow,
	}, generated)
}

func TestPrompter_Generate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mode      composer.Mode
		selection category.Selection
		opts      []func(*testComposerConfig)
		wantErr   error
	}{
		{
			name:      "unknown label",
			mode:      composer.ModeDelegated,
			selection: category.Selection{Theme: "nature", Technique: "Watercolor", Style: "Impressionism"},
			wantErr:   category.ErrUnknownLabel,
		},
		{
			name:      "unknown mode",
			mode:      composer.Mode("remote"),
			selection: natureSelection,
			wantErr:   composer.ErrUnknownMode,
		},
		{
			name:      "missing credential",
			mode:      composer.ModeDelegated,
			selection: natureSelection,
			opts: []func(*testComposerConfig){func(c *testComposerConfig) {
				c.credentials = credentials.Static{}
			}},
			wantErr: composer.ErrConfigurationMissing,
		},
		{
			name:      "generator failure",
			mode:      composer.ModeDelegated,
			selection: natureSelection,
			opts: []func(*testComposerConfig){func(c *testComposerConfig) {
				c.complete = func(ctx context.Context, req completion.Request) ([]string, error) {
					return nil, assert.AnError
				}
			}},
			wantErr: composer.ErrExternalGenerationFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := setupTestPrompter(t, func(config *prompter.PrompterConfig) {
				config.Composer = newTestComposer(t, tt.opts...)
			})

			_, err := p.Generate(context.Background(), tt.mode, tt.selection)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, p.Recent())
		})
	}
}

func TestPrompter_Generate_LocalAfterDelegatedFailure(t *testing.T) {
	p := setupTestPrompter(t, func(config *prompter.PrompterConfig) {
		config.Composer = newTestComposer(t, func(c *testComposerConfig) {
			c.credentials = nil
		})
	})

	_, err := p.Generate(context.Background(), composer.ModeDelegated, natureSelection)
	require.ErrorIs(t, err, composer.ErrConfigurationMissing)

	generated, err := p.Generate(context.Background(), composer.ModeLocal, natureSelection)
	require.NoError(t, err)
	assert.NotEmpty(t, generated.Prompt)
}

func TestPrompter_GenerateBatch(t *testing.T) {
	var calls atomic.Int32
	p := setupTestPrompter(t, func(config *prompter.PrompterConfig) {
		config.HistorySize = 20
		config.Composer = newTestComposer(t, func(c *testComposerConfig) {
			c.complete = func(ctx context.Context, req completion.Request) ([]string, error) {
				calls.Add(1)
				return []string{"batch prompt"}, nil
			}
		})
	})

	generated, err := p.GenerateBatch(context.Background(), composer.ModeDelegated, natureSelection, 6)
	require.NoError(t, err)

	assert.Len(t, generated, 6)
	assert.EqualValues(t, 6, calls.Load())
	for _, g := range generated {
		assert.Equal(t, "batch prompt", g.Prompt)
		assert.Equal(t, natureSelection, g.Selection)
	}
	assert.Len(t, p.Recent(), 6)
}

func TestPrompter_GenerateBatch_Local(t *testing.T) {
	p := setupTestPrompter(t)

	generated, err := p.GenerateBatch(context.Background(), composer.ModeLocal, category.Selection{}, prompter.MaxBatchSize)
	require.NoError(t, err)

	assert.Len(t, generated, prompter.MaxBatchSize)
	for _, g := range generated {
		assert.Equal(t, composer.LocalPromptText(g.Selection), g.Prompt)
	}
}

func TestPrompter_GenerateBatch_InvalidSize(t *testing.T) {
	p := setupTestPrompter(t)

	for _, count := range []int{-1, 0, prompter.MaxBatchSize + 1} {
		_, err := p.GenerateBatch(context.Background(), composer.ModeLocal, category.Selection{}, count)
		assert.ErrorIs(t, err, prompter.ErrInvalidBatchSize, "count %d", count)
	}
}

func TestPrompter_GenerateBatch_Failure(t *testing.T) {
	var calls atomic.Int32
	p := setupTestPrompter(t, func(config *prompter.PrompterConfig) {
		config.Composer = newTestComposer(t, func(c *testComposerConfig) {
			c.complete = func(ctx context.Context, req completion.Request) ([]string, error) {
				if calls.Add(1) == 2 {
					return nil, assert.AnError
				}
				return []string{"ok"}, nil
			}
		})
	})

	generated, err := p.GenerateBatch(context.Background(), composer.ModeDelegated, natureSelection, 3)
	assert.ErrorIs(t, err, composer.ErrExternalGenerationFailure)
	assert.Nil(t, generated)
}

func TestPrompter_Start_NoAddress(t *testing.T) {
	p := setupTestPrompter(t)

	assert.NoError(t, p.Start(context.Background()))
}

func TestPrompter_Start_StopsOnCancel(t *testing.T) {
	p := setupTestPrompter(t, func(config *prompter.PrompterConfig) {
		config.ApiIpPort = "127.0.0.1:0"
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestPrompter_Start_InvalidAddress(t *testing.T) {
	p := setupTestPrompter(t, func(config *prompter.PrompterConfig) {
		config.ApiIpPort = "127.0.0.1:-1"
	})

	assert.Error(t, p.Start(context.Background()))
}

func TestNewComposerFromSetupResult(t *testing.T) {
	_, err := prompter.NewComposerFromSetupResult(nil, credentials.Env{})
	assert.Error(t, err)

	c, err := prompter.NewComposerFromSetupResult(&setup.SetupResult{OpenAiModel: completion.DefaultModel}, credentials.Static{})
	require.NoError(t, err)

	_, err = c.ComposeDelegated(context.Background(), natureSelection)
	assert.ErrorIs(t, err, composer.ErrConfigurationMissing)
}
