package cli

import (
	"github.com/spf13/cobra"

	"lrn/internal"
	"lrn/internal/di"
	"lrn/internal/structures"
)

// AppFactory builds the application graph from the CLI flags.
type AppFactory func(flags *structures.CliFlags) (*internal.App, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Debug      bool
	NewApp     AppFactory
}

// NewRootCommand creates the root command for the lrn CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{NewApp: di.InitApp})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lrn",
		Short: "Lottery result notifier",
		Long: `Harvests Dominican lottery results from several sources, reconciles them
against the local history and pushes one notification per new draw.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config/config.yaml", "path to the YAML configuration")
	cmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "debug logging, mirrored to the console")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCanonicalizeCommand())

	return cmd
}
