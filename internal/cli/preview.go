package cli

import (
	"context"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/label"
	"github.com/labelmint/labelmint/pkg/table"
)

// newPreviewCmd creates the preview command, which renders the first data
// row to a single PNG so a layout can be inspected before a full batch.
// With an empty data file the preview is the "No data" placeholder.
func newPreviewCmd() *cobra.Command {
	var (
		layout string
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview [data-file]",
		Short: "Render the first row as a single label PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), args[0], layout, output)
		},
	}

	cmd.Flags().StringVarP(&layout, "layout", "l", "", "layout TOML file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "label.png", "output PNG path")
	_ = cmd.MarkFlagRequired("layout")

	return cmd
}

func runPreview(ctx context.Context, dataPath, layoutPath, output string) error {
	logger := loggerFromContext(ctx)

	t, err := table.ReadFile(dataPath)
	if err != nil {
		return err
	}
	cfg, err := LoadLayout(layoutPath)
	if err != nil {
		return err
	}

	var row table.Row
	if !t.Empty() {
		row = t.Rows[0]
	} else {
		logger.Warn("data file has no rows; rendering placeholder")
	}

	img, err := label.NewRenderer().Render(row, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", output)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", output)
	}

	printSuccess("rendered preview (%dx%d)", cfg.Width, cfg.Height)
	printFile(output)
	return nil
}
