package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/smartenter/java/codebase"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdio",
		Long: `Start the language server on stdio.

Smart enter is exposed as the workspace command sai.smartEnter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version)
			return server.RunStdio()
		},
	}
}
