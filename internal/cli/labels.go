package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/label"
	"github.com/labelmint/labelmint/pkg/table"
)

// labelsOpts holds the command-line flags for the labels command.
type labelsOpts struct {
	layout string // layout TOML file
	output string // output zip path
	start  int    // first row to render, 1-based; 0 means from the beginning
	end    int    // last row to render, 1-based inclusive; 0 means to the end
}

// newLabelsCmd creates the labels command, which renders every row of a
// data file into a zip archive of PNG labels.
func newLabelsCmd() *cobra.Command {
	var opts labelsOpts

	cmd := &cobra.Command{
		Use:   "labels [data-file]",
		Short: "Render a batch of labels into a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabels(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "layout TOML file (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "labels.zip", "output archive path")
	cmd.Flags().IntVar(&opts.start, "start", 0, "first row to render (1-based)")
	cmd.Flags().IntVar(&opts.end, "end", 0, "last row to render (1-based, inclusive)")
	_ = cmd.MarkFlagRequired("layout")

	return cmd
}

func runLabels(ctx context.Context, dataPath string, opts *labelsOpts) error {
	logger := loggerFromContext(ctx)

	t, err := table.ReadFile(dataPath)
	if err != nil {
		return err
	}
	logger.Debugf("loaded %d rows, %d columns from %s", len(t.Rows), len(t.Columns), dataPath)

	cfg, err := LoadLayout(opts.layout)
	if err != nil {
		return err
	}

	rows, err := sliceRows(t.Rows, opts.start, opts.end)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	renderer := label.NewRenderer()
	result, err := label.RenderBatch(renderer, rows, cfg)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d labels", result.Rendered))

	if err := os.WriteFile(opts.output, result.Archive, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}

	printSuccess("generated %d of %d labels", result.Rendered, len(rows))
	for _, idx := range result.Skipped {
		printWarning("skipped row %d", idx)
	}
	printFile(opts.output)
	return nil
}

// sliceRows applies the 1-based --start/--end range to the row set.
func sliceRows(rows []table.Row, start, end int) ([]table.Row, error) {
	if start == 0 && end == 0 {
		return rows, nil
	}
	if start == 0 {
		start = 1
	}
	if end == 0 || end > len(rows) {
		end = len(rows)
	}
	if start < 1 || start > end {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid row range %d..%d for %d rows", start, end, len(rows))
	}
	return rows[start-1 : end], nil
}
