package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/settlement"
	"github.com/labelmint/labelmint/pkg/table"
)

// settleOpts holds the command-line flags for the settle command.
type settleOpts struct {
	cogs   string // completed cost spreadsheet; empty skips the P&L stage
	outDir string // directory for generated spreadsheets
	topN   int    // how many top/bottom performers to print
}

// newSettleCmd creates the settle command. It parses a tab-delimited
// settlement report, prints the financial summary, and writes the order
// summary plus a cost template. When --cogs points at a completed cost
// file, the full P&L report is computed and written as well.
func newSettleCmd() *cobra.Command {
	opts := settleOpts{topN: 5}

	cmd := &cobra.Command{
		Use:   "settle [report-file]",
		Short: "Analyze a settlement report into order summaries and P&L",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.cogs, "cogs", "", "completed cost spreadsheet (SKU, COGS columns)")
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", ".", "directory for generated spreadsheets")
	cmd.Flags().IntVar(&opts.topN, "top", opts.topN, "number of top/bottom performers to show")

	return cmd
}

func runSettle(ctx context.Context, reportPath string, opts *settleOpts) error {
	logger := loggerFromContext(ctx)

	t, err := table.ReadFile(reportPath)
	if err != nil {
		return err
	}
	logger.Debugf("loaded %d rows from %s", len(t.Rows), reportPath)

	rep, err := settlement.Parse(t)
	if err != nil {
		return err
	}
	lines := rep.Summarize()
	skus := settlement.UniqueSKUs(lines)

	printTitle("Settlement Summary")
	printKeyValue("Period", fmt.Sprintf("%s → %s", rep.StartDate, rep.EndDate))
	printKeyValue("Deposit date", rep.DepositDate)
	printKeyValue("Transferred", fmt.Sprintf("%.2f", rep.TotalAmount))
	printKeyValue("Opening balance", fmt.Sprintf("%.2f", rep.OpeningBalance))
	printKeyValue("Closing balance", fmt.Sprintf("%.2f", rep.ClosingBalance))
	printKeyValue("Advisory fees", fmt.Sprintf("%.2f", rep.AdvisoryFees))
	printKeyValue("Advertising", fmt.Sprintf("%.2f", rep.AdvertisingCost))
	printKeyValue("Total sales", fmt.Sprintf("%.2f", rep.TotalSales))
	printInfo("%d order-SKU combinations, %d unique SKUs", len(lines), len(skus))

	if err := writeSpreadsheet(filepath.Join(opts.outDir, "Order_Summary.xlsx"), func(f *os.File) error {
		return settlement.WriteOrderSummary(f, lines)
	}); err != nil {
		return err
	}
	if err := writeSpreadsheet(filepath.Join(opts.outDir, "COGS_Template.xlsx"), func(f *os.File) error {
		return settlement.WriteCOGSTemplate(f, skus)
	}); err != nil {
		return err
	}

	if opts.cogs == "" {
		printInfo("fill in COGS_Template.xlsx and re-run with --cogs to compute P&L")
		return nil
	}

	costs, err := readCosts(opts.cogs)
	if err != nil {
		return err
	}
	pnl := settlement.ApplyCOGS(lines, costs)

	printTitle("Order P&L")
	printKeyValue("Total revenue", fmt.Sprintf("%.2f", pnl.TotalRevenue))
	printKeyValue("Total COGS", fmt.Sprintf("%.2f", pnl.TotalCOGS))
	printKeyValue("Total profit", fmt.Sprintf("%.2f", pnl.TotalProfit))
	printKeyValue("Margin", fmt.Sprintf("%.1f%%", pnl.Margin))

	printInfo("top %d orders by profit", opts.topN)
	for _, line := range pnl.Top(opts.topN) {
		printDetail("%s  %s  %.2f", line.OrderID, line.SKU, line.Profit)
	}
	printInfo("bottom %d orders by profit", opts.topN)
	for _, line := range pnl.Bottom(opts.topN) {
		printDetail("%s  %s  %.2f", line.OrderID, line.SKU, line.Profit)
	}

	return writeSpreadsheet(filepath.Join(opts.outDir, "Order_PNL_Final_Report.xlsx"), func(f *os.File) error {
		return settlement.WritePNLReport(f, pnl)
	})
}

// writeSpreadsheet creates path and hands it to write, reporting the file
// on success.
func writeSpreadsheet(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// readCosts opens and parses the completed cost spreadsheet.
func readCosts(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return settlement.ReadCOGS(f)
}
