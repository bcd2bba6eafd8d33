package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/smartenter/format"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var style styleFlags

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Re-indent a .java file",
		Long: `Re-indent a .java file to stdout.

Only leading whitespace changes; everything after the first token of a
line is left as written. If no file is provided, reads Java source from
stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}
			if len(args) == 1 {
				if ext := filepath.Ext(args[0]); ext != ".java" {
					return fmt.Errorf("expected .java file, got %s", ext)
				}
			}
			source, filename, err := readSource(args)
			if err != nil {
				return err
			}
			dir := "."
			if filename != "" {
				dir = filepath.Dir(filename)
			}
			settings, err := loadSettings(dir)
			if err != nil {
				return err
			}
			style.apply(cmd, &settings)

			output, err := format.Reindent(source, settings.RepairStyle())
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, output, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	style.register(cmd)

	return cmd
}
