package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/labelmint/labelmint/pkg/buildinfo"
)

// Execute runs the labelmint CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (labels,
// preview, settle), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "labelmint",
		Short:        "Labelmint renders product labels and analyzes settlement reports",
		Long:         `Labelmint is a CLI tool that turns tabular product data into rasterized label images (text, barcode, logo) and aggregates marketplace settlement reports into per-order profit-and-loss summaries.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLabelsCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newSettleCmd())

	return root.ExecuteContext(ctx)
}
