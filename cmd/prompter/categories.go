package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available themes, techniques and styles",
		Run: func(cmd *cobra.Command, args []string) {
			categories := category.Default().Categories()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "themes: %s\n", strings.Join(categories.Themes, ", "))
			fmt.Fprintf(out, "techniques: %s\n", strings.Join(categories.Techniques, ", "))
			fmt.Fprintf(out, "styles: %s\n", strings.Join(categories.Styles, ", "))
		},
	}
}
