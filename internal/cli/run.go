package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lrn/internal/structures"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch, reconcile and notify once",
		Long: `Runs a single pass: fetch every enabled source, keep today's results that
are not in the store yet, push one notification per new draw and persist the
store and send cache. Exits non-zero only for invalid configuration or when the
store lock cannot be taken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := &structures.CliFlags{ConfigPath: rootOpts.ConfigPath, DebugMode: rootOpts.Debug}
			app, err := rootOpts.NewApp(flags)
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			defer app.Close()

			report, err := app.Run(cmd.Context())
			if err != nil {
				return err
			}
			if report.NoInput {
				fmt.Fprintln(cmd.OutOrStdout(), "no input from any source")
				return nil
			}
			if report.Interrupted {
				fmt.Fprintln(cmd.OutOrStdout(), "interrupted before reconciliation, store untouched")
				return nil
			}
			d := report.Dispatch
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d new, %d sent, %d skipped, %d failed\n",
				report.RunID, len(report.Reconciled.Delta), d.Sent, d.Skipped, d.Failed)
			return nil
		},
	}
}
