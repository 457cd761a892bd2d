package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/NethermindEth/art-prompter/pkg/prompter/debug"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "prompter",
		Short:         "Generate art prompts from a theme, a technique and a style",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !debug.IsDebugApi() {
				gin.SetMode(gin.ReleaseMode)
			}
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCategoriesCmd())

	return rootCmd
}
