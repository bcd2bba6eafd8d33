package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/smartenter/java/smartenter"
	"github.com/dhamidi/smartenter/project"
	"github.com/dhamidi/smartenter/repair"
)

const version = "0.1.0"

var globals struct {
	verbose int
	logPath string
	config  string
}

var log = commonlog.GetLogger("smartenter.cli")

func main() {
	rootCmd := &cobra.Command{
		Use:           "sai",
		Short:         "Smart enter for Java source",
		SilenceUsage:  true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if globals.logPath != "" {
				path = &globals.logPath
			}
			commonlog.Configure(globals.verbose, path)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&globals.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&globals.logPath, "log", "", "write logs to this file instead of stderr")
	flags.StringVar(&globals.config, "config", "", "settings file to use instead of the nearest "+project.SettingsFile)

	rootCmd.AddCommand(newEnterCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newConvergeCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings returns the settings named by --config, or those that apply
// to dir.
func loadSettings(dir string) (project.Settings, error) {
	if globals.config != "" {
		return project.LoadSettings(globals.config)
	}
	return project.DiscoverSettings(dir)
}

// styleFlags lets a command override the style settings.
type styleFlags struct {
	indentSize int
	useTabs    bool
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.indentSize, "indent-size", 0, "spaces per indentation level")
	cmd.Flags().BoolVar(&f.useTabs, "tabs", false, "indent with tabs")
}

func (f *styleFlags) apply(cmd *cobra.Command, s *project.Settings) {
	if cmd.Flags().Changed("indent-size") {
		s.Style.IndentSize = f.indentSize
	}
	if cmd.Flags().Changed("tabs") {
		s.Style.UseTabs = f.useTabs
	}
}

func newEngine(s project.Settings) *repair.Engine {
	return smartenter.NewEngine(smartenter.Options{
		Style:       s.RepairStyle(),
		MaxAttempts: s.Enter.MaxAttempts,
		Logger:      commonlog.GetLogger("smartenter.repair"),
	})
}
