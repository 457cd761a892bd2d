package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NethermindEth/art-prompter/pkg/prompter"
	"github.com/NethermindEth/art-prompter/pkg/prompter/setup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the prompt API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			setupResult, err := setup.Setup(ctx)
			if err != nil {
				return fmt.Errorf("failed to setup: %w", err)
			}

			prompterConfig, err := prompter.NewPrompterConfigFromSetupResult(setupResult)
			if err != nil {
				return fmt.Errorf("failed to create prompter config: %w", err)
			}

			p, err := prompter.NewPrompter(ctx, prompterConfig)
			if err != nil {
				return fmt.Errorf("failed to create prompter: %w", err)
			}

			return p.Start(ctx)
		},
	}
}
