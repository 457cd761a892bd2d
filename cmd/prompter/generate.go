package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NethermindEth/art-prompter/pkg/prompter"
	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
	"github.com/NethermindEth/art-prompter/pkg/prompter/composer"
	"github.com/NethermindEth/art-prompter/pkg/prompter/credentials"
	"github.com/NethermindEth/art-prompter/pkg/prompter/setup"
)

type generateOptions struct {
	delegated bool
	theme     string
	technique string
	style     string
	count     int
	apiKey    string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print generated art prompts",
		Long: "Print generated art prompts. Without --delegated the selection flags are ignored " +
			"and every prompt samples its own theme, technique and style.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.delegated, "delegated", "d", false, "generate the prompt with the OpenAI completions API")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme label for delegated generation")
	cmd.Flags().StringVar(&opts.technique, "technique", "", "technique label for delegated generation")
	cmd.Flags().StringVar(&opts.style, "style", "", "style label for delegated generation")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "OpenAI API key, takes precedence over "+credentials.OpenAiApiKey)
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, fmt.Sprintf("number of prompts to generate (1-%d)", prompter.MaxBatchSize))

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	config, err := setup.NewConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to get config from env: %w", err)
	}

	setupResult := &setup.SetupResult{
		OpenAiModel:      config.OpenAiModel,
		OpenAiBaseUrl:    config.OpenAiBaseUrl,
		BatchConcurrency: config.BatchConcurrency,
		HistorySize:      config.HistorySize,
		HistoryTTL:       config.HistoryTTL,
	}

	prompterConfig, err := prompter.NewPrompterConfigFromSetupResult(setupResult)
	if err != nil {
		return err
	}

	if opts.apiKey != "" {
		prompterConfig.Composer, err = prompter.NewComposerFromSetupResult(setupResult, credentials.Chain{
			credentials.Static{credentials.OpenAiApiKey: opts.apiKey},
			credentials.Env{},
		})
		if err != nil {
			return err
		}
	}

	p, err := prompter.NewPrompter(cmd.Context(), prompterConfig)
	if err != nil {
		return err
	}

	mode := composer.ModeLocal
	sel := category.Selection{}
	if opts.delegated {
		mode = composer.ModeDelegated
		sel = selectionWithDefaults(prompterConfig.Composer.Registry().First(), opts)
	}

	generated, err := p.GenerateBatch(cmd.Context(), mode, sel, opts.count)
	if err != nil {
		return err
	}

	for _, g := range generated {
		fmt.Fprintln(cmd.OutOrStdout(), g.Prompt)
	}

	return nil
}

func selectionWithDefaults(defaults category.Selection, opts *generateOptions) category.Selection {
	sel := defaults
	if opts.theme != "" {
		sel.Theme = opts.theme
	}
	if opts.technique != "" {
		sel.Technique = opts.technique
	}
	if opts.style != "" {
		sel.Style = opts.style
	}
	return sel
}
