package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/smartenter/java/smartenter"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

var (
	caretColor   = color.New(color.FgBlack, color.BgYellow, color.Bold)
	okColor      = color.New(color.FgGreen, color.Bold)
	pendingColor = color.New(color.FgYellow, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
)

func outcomeColor(o repair.Outcome) *color.Color {
	switch o {
	case repair.OutcomeCompleted:
		return okColor
	case repair.OutcomePendingError, repair.OutcomeNoTarget, repair.OutcomePreempted:
		return pendingColor
	default:
		return failColor
	}
}

// parseAt reads a one-based LINE:COL position.
func parseAt(buf *text.Buffer, at string) (int, error) {
	l, c, ok := strings.Cut(at, ":")
	if !ok {
		return 0, fmt.Errorf("--at %q: expected LINE:COL", at)
	}
	line, err := strconv.Atoi(l)
	if err != nil {
		return 0, fmt.Errorf("--at %q: %w", at, err)
	}
	col, err := strconv.Atoi(c)
	if err != nil {
		return 0, fmt.Errorf("--at %q: %w", at, err)
	}
	return buf.Offset(line-1, col-1)
}

func newEnterCmd() *cobra.Command {
	var (
		at              string
		offset          int
		afterCompletion bool
		overwrite       bool
		show            bool
		style           styleFlags
	)

	cmd := &cobra.Command{
		Use:   "enter <file>",
		Short: "Run smart enter at a position in a .java file",
		Long: `Run smart enter at a position in a .java file and print the result.

The position is given either as --at LINE:COL (one-based) or as a byte
--offset. Use -w to overwrite the file, and --show to mark the new caret
position in the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if (at == "") == (offset < 0) {
				return fmt.Errorf("exactly one of --at and --offset is required")
			}
			source, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			settings, err := loadSettings(filepath.Dir(filename))
			if err != nil {
				return err
			}
			style.apply(cmd, &settings)

			caret := offset
			if at != "" {
				if caret, err = parseAt(text.NewBuffer(string(source)), at); err != nil {
					return err
				}
			}
			if caret > len(source) {
				return fmt.Errorf("--offset %d: %w", caret, text.ErrOutOfRange)
			}

			out, res, err := smartenter.Enter(newEngine(settings), string(source), caret, afterCompletion)
			if err != nil {
				return err
			}

			buf := text.NewBuffer(out)
			line, col := buf.Position(res.Caret)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s at %d:%d after %d attempts\n",
				outcomeColor(res.Outcome).Sprint(res.Outcome), line+1, col+1, res.Attempts)

			if overwrite {
				return os.WriteFile(filename, []byte(out), 0o644)
			}
			return writeWithCaret(cmd.OutOrStdout(), out, res.Caret, show)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "caret position as LINE:COL, one-based")
	cmd.Flags().IntVar(&offset, "offset", -1, "caret position as a byte offset")
	cmd.Flags().BoolVar(&afterCompletion, "after-completion", false, "run the post-completion chain")
	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&show, "show", false, "mark the caret in the output")
	style.register(cmd)

	return cmd
}

func writeWithCaret(w io.Writer, out string, caret int, show bool) error {
	if !show {
		_, err := io.WriteString(w, out)
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s%s", out[:caret], caretColor.Sprint("|"), out[caret:])
	return err
}
