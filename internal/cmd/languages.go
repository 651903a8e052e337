package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/igaisin/playwright/cmd/state"
	"github.com/igaisin/playwright/locatorgen"
)

func getCmdLanguages(gs *state.GlobalState) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported target languages",
		Long:  "List all languages the translate command can generate locator code for.",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			for _, lang := range locatorgen.Languages() {
				printToStdout(gs, fmt.Sprintln(lang))
			}
		},
	}
}
