package cli

import (
	"time"

	"github.com/spf13/cobra"

	"tracev/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandView CommandType = iota
	CommandVersion
	CommandHelp
)

// Options contains the parsed command-line arguments
type Options struct {
	Type       CommandType
	Input      string
	NoFollow   bool
	NoUI       bool
	Refresh    time.Duration
	LogFile    string
	ConfigPath string
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version bool
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type: CommandView,
	}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracev [file]",
		Short: "An interactive viewer for structured tracing logs",
		Long: `Tracev is an interactive terminal viewer for structured tracing logs.
It follows a log file (or stdin), builds a module tree from the entries
and lets you filter, mark and copy them.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandView
			if len(args) > 0 {
				result.Input = args[0]
			}
		},
	}

	cmd.Flags().BoolVar(&result.NoFollow, "no-follow", false, "Read the file once instead of tailing it")
	cmd.Flags().BoolVar(&result.NoUI, "no-ui", false, "Stream filtered entries to stdout without the TUI")
	cmd.Flags().DurationVar(&result.Refresh, "refresh", 0, "UI refresh interval (default from config)")
	cmd.Flags().StringVar(&result.LogFile, "log-file", "", "Write internal logs to a file")
	cmd.Flags().StringVarP(&result.ConfigPath, "config", "c", config.ConfigFile, "Path to the config file")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}

	return cmd
}

// Apply merges parsed options into the configuration
func (o *Options) Apply(cfg *config.Config) {
	if o.Input != "" {
		cfg.Input = o.Input
	}

	if o.NoFollow {
		cfg.Follow = false
	}

	if o.Refresh > 0 {
		cfg.Refresh = o.Refresh
	}

	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}
}
