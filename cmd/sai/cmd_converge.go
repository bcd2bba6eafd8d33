package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/smartenter/java/smartenter"
	"github.com/dhamidi/smartenter/project"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

// fileReport tallies the outcomes of smart enter at every line end of a file.
type fileReport struct {
	path     string
	lines    int
	outcomes map[repair.Outcome]int
	failures []string
}

func (r *fileReport) failed() bool {
	return len(r.failures) > 0
}

func convergeFile(ctx context.Context, path string, settings project.Settings) (*fileReport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	src := string(source)
	engine := newEngine(settings)
	buf := text.NewBuffer(src)

	report := &fileReport{path: path, outcomes: make(map[repair.Outcome]int)}
	for offset := 0; offset <= len(src); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eol := buf.LineEnd(offset)
		line, _ := buf.Position(eol)
		report.lines++

		_, res, err := smartenter.Enter(engine, src, eol, false)
		report.outcomes[res.Outcome]++
		if err != nil {
			report.failures = append(report.failures, fmt.Sprintf("%s:%d: %s: %v", path, line+1, res.Outcome, err))
		}
		if eol >= len(src) {
			break
		}
		offset = eol + 1
	}
	log.Debugf("%s: %d lines checked", path, report.lines)
	return report, nil
}

func newConvergeCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "converge [files...]",
		Short: "Run smart enter at every line end and report outcomes",
		Long: `Run smart enter at the end of every line of each file and report how
each invocation ended. The files are not modified.

Without arguments, checks the .java files of the project in the current
directory. Fails if any invocation rolled back or gave up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				proj, err := project.Load(".")
				if err != nil {
					return err
				}
				if files, err = proj.JavaFiles(); err != nil {
					return err
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no .java files found")
			}

			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}
			reports := make([]*fileReport, len(files))
			g, gctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(min(jobs, len(files)))
			for i, path := range files {
				g.Go(func() error {
					settings, err := loadSettings(filepath.Dir(path))
					if err != nil {
						return err
					}
					r, err := convergeFile(gctx, path, settings)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					reports[i] = r
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range reports {
				var parts []string
				for o := repair.OutcomeCompleted; o <= repair.OutcomeAborted; o++ {
					if n := r.outcomes[o]; n > 0 {
						parts = append(parts, outcomeColor(o).Sprintf("%s=%d", o, n))
					}
				}
				status := okColor.Sprint("ok")
				if r.failed() {
					status = failColor.Sprint("FAIL")
					failed++
				}
				fmt.Fprintf(out, "%s %s (%d lines) %s\n", status, r.path, r.lines, strings.Join(parts, " "))
				for _, f := range r.failures {
					fmt.Fprintf(out, "    %s\n", f)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files did not converge", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files to check concurrently (default GOMAXPROCS)")

	return cmd
}
