package settlement

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/table"
)

// Cost file column names. The template is written with these headers and
// the completed file must bring them back.
const (
	cogsSKUColumn  = "SKU"
	cogsCostColumn = "COGS"
)

// WriteCOGSTemplate writes a cost template spreadsheet: one row per SKU
// with an empty COGS column for the user to fill in.
func WriteCOGSTemplate(w io.Writer, skus []string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "COGS"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rename sheet")
	}
	if err := setRow(f, sheet, 1, []any{cogsSKUColumn, cogsCostColumn}); err != nil {
		return err
	}
	for i, sku := range skus {
		if err := setRow(f, sheet, i+2, []any{sku, ""}); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write cost template")
	}
	return nil
}

// ReadCOGS parses a completed cost spreadsheet into a SKU to unit-cost
// map. The file must carry SKU and COGS columns; rows with a blank or
// non-numeric cost are skipped.
func ReadCOGS(r io.Reader) (map[string]float64, error) {
	t, err := table.ReadXLSX(r)
	if err != nil {
		return nil, err
	}
	if !t.HasColumn(cogsSKUColumn) || !t.HasColumn(cogsCostColumn) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"cost file must have %q and %q columns", cogsSKUColumn, cogsCostColumn)
	}

	costs := make(map[string]float64)
	for _, row := range t.Rows {
		sku, ok := row.Lookup(cogsSKUColumn)
		if !ok {
			continue
		}
		cost, ok := row.Float(cogsCostColumn)
		if !ok {
			continue
		}
		costs[sku] = cost
	}
	return costs, nil
}

// WriteOrderSummary writes the aggregated order lines as a spreadsheet.
func WriteOrderSummary(w io.Writer, lines []OrderLine) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Order_Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rename sheet")
	}
	header := []any{"order-id", "sku", "total_amount", "quantity_ordered", "settlement-id", "marketplace-name", "posted-date"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, line := range lines {
		row := []any{line.OrderID, line.SKU, line.TotalAmount, line.Quantity, line.SettlementID, line.Marketplace, line.PostedDate}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write order summary")
	}
	return nil
}

// WritePNLReport writes the profit-and-loss lines as a spreadsheet.
func WritePNLReport(w io.Writer, rep *PNLReport) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Order_PNL"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rename sheet")
	}
	header := []any{"order-id", "sku", "total_amount", "quantity_ordered", "COGS", "profit"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, line := range rep.Lines {
		var cost any
		if line.HasCost {
			cost = line.UnitCost
		}
		row := []any{line.OrderID, line.SKU, line.TotalAmount, line.Quantity, cost, line.Profit}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write P&L report")
	}
	return nil
}

// setRow writes values into row n (1-based) starting at column A.
func setRow(f *excelize.File, sheet string, n int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, n)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "cell name")
		}
		if v == nil {
			continue
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "set cell %s", cell)
		}
	}
	return nil
}
