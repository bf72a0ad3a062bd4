// Package settlement analyzes marketplace settlement reports.
//
// A settlement report is a tab-delimited table mixing header rows,
// reserve-balance rows, fee rows and per-order transaction rows. This
// package extracts the report-level summary, aggregates order transactions
// into per-order-SKU lines, and joins user-supplied unit costs into a
// profit-and-loss report.
package settlement

import (
	"math"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/table"
)

// Settlement report column names.
const (
	colStartDate   = "settlement-start-date"
	colEndDate     = "settlement-end-date"
	colDepositDate = "deposit-date"
	colTotalAmount = "total-amount"

	colTransactionType   = "transaction-type"
	colAmountType        = "amount-type"
	colAmountDescription = "amount-description"
	colAmount            = "amount"

	colOrderID      = "order-id"
	colSKU          = "sku"
	colQuantity     = "quantity-purchased"
	colSettlementID = "settlement-id"
	colMarketplace  = "marketplace-name"
	colPostedDate   = "posted-date"
)

// Row discriminator values.
const (
	txnOrder         = "Order"
	descPrincipal    = "Principal"
	descOpenReserve  = "Previous Reserve Amount Balance"
	descCloseReserve = "Current Reserve Amount"
	typeAdvisoryFee  = "Amazon Business Advisory Fee"
	typeAdvertising  = "Cost of Advertising"
)

// Report is the parsed settlement header and financial summary.
type Report struct {
	StartDate   string
	EndDate     string
	DepositDate string
	TotalAmount float64

	OpeningBalance  float64
	ClosingBalance  float64
	AdvisoryFees    float64 // absolute value of advisory fee charges
	AdvertisingCost float64 // absolute value of advertising charges
	TotalSales      float64 // sum of Order transaction amounts

	rows []table.Row
}

// Parse extracts the report summary from a settlement table. The table
// must declare the transaction-type and amount columns; header fields come
// from the first data row, balances from their marker rows.
func Parse(t *table.Table) (*Report, error) {
	if t.Empty() {
		return nil, errors.New(errors.ErrCodeParse, "settlement report has no rows")
	}
	for _, col := range []string{colTransactionType, colAmount} {
		if !t.HasColumn(col) {
			return nil, errors.New(errors.ErrCodeParse, "settlement report missing column %q", col)
		}
	}

	rep := &Report{rows: t.Rows}

	first := t.Rows[0]
	rep.StartDate, _ = first.Lookup(colStartDate)
	rep.EndDate, _ = first.Lookup(colEndDate)
	rep.DepositDate, _ = first.Lookup(colDepositDate)
	rep.TotalAmount, _ = first.Float(colTotalAmount)

	for _, row := range t.Rows {
		amount, ok := row.Float(colAmount)
		if !ok {
			continue
		}
		if desc, _ := row.Lookup(colAmountDescription); desc == descOpenReserve && rep.OpeningBalance == 0 {
			rep.OpeningBalance = amount
		} else if desc == descCloseReserve && rep.ClosingBalance == 0 {
			rep.ClosingBalance = amount
		}
		if at, _ := row.Lookup(colAmountType); at == typeAdvisoryFee {
			rep.AdvisoryFees += math.Abs(amount)
		} else if at == typeAdvertising {
			rep.AdvertisingCost += math.Abs(amount)
		}
		if tt, _ := row.Lookup(colTransactionType); tt == txnOrder {
			rep.TotalSales += amount
		}
	}

	rep.AdvisoryFees = round2(rep.AdvisoryFees)
	rep.AdvertisingCost = round2(rep.AdvertisingCost)
	rep.TotalSales = round2(rep.TotalSales)
	return rep, nil
}

// round2 rounds to two decimal places for report readability.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
