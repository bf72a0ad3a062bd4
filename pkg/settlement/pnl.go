package settlement

import "sort"

// PNLLine is an order line joined with its unit cost. HasCost is false
// when no cost was supplied for the SKU; such lines carry a zero cost and
// their profit equals the settlement amount.
type PNLLine struct {
	OrderLine
	UnitCost float64
	HasCost  bool
	Profit   float64
}

// PNLReport is the complete profit-and-loss view of a settlement.
type PNLReport struct {
	Lines []PNLLine

	TotalRevenue float64
	TotalCOGS    float64
	TotalProfit  float64
	Margin       float64 // profit as a percentage of revenue, 0 when revenue is 0
}

// ApplyCOGS joins per-SKU unit costs onto the order lines and computes
// profit per line (amount minus cost times quantity) and the report
// totals.
func ApplyCOGS(lines []OrderLine, costs map[string]float64) *PNLReport {
	rep := &PNLReport{Lines: make([]PNLLine, 0, len(lines))}

	for _, line := range lines {
		pl := PNLLine{OrderLine: line}
		if cost, ok := costs[line.SKU]; ok {
			pl.UnitCost = cost
			pl.HasCost = true
		}
		pl.Profit = round2(line.TotalAmount - pl.UnitCost*line.Quantity)

		rep.TotalRevenue += line.TotalAmount
		rep.TotalCOGS += pl.UnitCost * line.Quantity
		rep.TotalProfit += pl.Profit
		rep.Lines = append(rep.Lines, pl)
	}

	rep.TotalRevenue = round2(rep.TotalRevenue)
	rep.TotalCOGS = round2(rep.TotalCOGS)
	rep.TotalProfit = round2(rep.TotalProfit)
	if rep.TotalRevenue > 0 {
		rep.Margin = round2(rep.TotalProfit / rep.TotalRevenue * 100)
	}
	return rep
}

// Top returns the n most profitable lines, best first.
func (p *PNLReport) Top(n int) []PNLLine {
	return p.rankedByProfit(n, func(a, b PNLLine) bool { return a.Profit > b.Profit })
}

// Bottom returns the n least profitable lines, worst first.
func (p *PNLReport) Bottom(n int) []PNLLine {
	return p.rankedByProfit(n, func(a, b PNLLine) bool { return a.Profit < b.Profit })
}

func (p *PNLReport) rankedByProfit(n int, less func(a, b PNLLine) bool) []PNLLine {
	ranked := make([]PNLLine, len(p.Lines))
	copy(ranked, p.Lines)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
