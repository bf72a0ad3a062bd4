package settlement

import (
	"sort"
)

// OrderLine is one aggregated (order, SKU) combination: settlement amounts
// summed across all of the pair's transaction rows, quantities summed from
// its Principal rows.
type OrderLine struct {
	OrderID      string
	SKU          string
	TotalAmount  float64
	Quantity     float64 // 0 when no Principal row exists for the pair
	SettlementID string
	Marketplace  string
	PostedDate   string
}

type orderKey struct {
	orderID string
	sku     string
}

// Summarize aggregates the report's Order transactions per (order-id, sku):
// amounts are summed and rounded to two decimals, quantities come from the
// Principal rows (missing Principal rows leave the quantity at zero), and
// the descriptive fields are taken from the pair's first transaction row.
// The result is sorted by order id, then SKU.
func (r *Report) Summarize() []OrderLine {
	byKey := make(map[orderKey]*OrderLine)
	var order []orderKey

	for _, row := range r.rows {
		if tt, _ := row.Lookup(colTransactionType); tt != txnOrder {
			continue
		}
		orderID, okO := row.Lookup(colOrderID)
		sku, okS := row.Lookup(colSKU)
		if !okO || !okS {
			continue
		}

		key := orderKey{orderID: orderID, sku: sku}
		line, ok := byKey[key]
		if !ok {
			line = &OrderLine{OrderID: orderID, SKU: sku}
			line.SettlementID, _ = row.Lookup(colSettlementID)
			line.Marketplace, _ = row.Lookup(colMarketplace)
			line.PostedDate, _ = row.Lookup(colPostedDate)
			byKey[key] = line
			order = append(order, key)
		}

		if amount, ok := row.Float(colAmount); ok {
			line.TotalAmount += amount
		}
		if desc, _ := row.Lookup(colAmountDescription); desc == descPrincipal {
			if qty, ok := row.Float(colQuantity); ok {
				line.Quantity += qty
			}
		}
	}

	lines := make([]OrderLine, 0, len(order))
	for _, key := range order {
		line := *byKey[key]
		line.TotalAmount = round2(line.TotalAmount)
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].OrderID != lines[j].OrderID {
			return lines[i].OrderID < lines[j].OrderID
		}
		return lines[i].SKU < lines[j].SKU
	})
	return lines
}

// UniqueSKUs returns the distinct SKUs across lines, in first-seen order.
// This is the row set for the cost template.
func UniqueSKUs(lines []OrderLine) []string {
	seen := make(map[string]struct{})
	var skus []string
	for _, line := range lines {
		if _, ok := seen[line.SKU]; ok {
			continue
		}
		seen[line.SKU] = struct{}{}
		skus = append(skus, line.SKU)
	}
	return skus
}
