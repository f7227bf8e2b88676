package models

import "github.com/shopspring/decimal"

// PortfolioMetrics aggregates the valuation of a list of holdings.
type PortfolioMetrics struct {
	TotalInvestment           decimal.Decimal `json:"totalInvestment"`
	TotalCurrentValue         decimal.Decimal `json:"totalCurrentValue"`
	TotalProfitLoss           decimal.Decimal `json:"totalProfitLoss"`
	TotalProfitLossPercentage decimal.Decimal `json:"totalProfitLossPercentage"`
	HoldingsCount             int             `json:"holdingsCount"`
	BestPerformer             *HoldingRecord  `json:"bestPerformer,omitempty"`
	WorstPerformer            *HoldingRecord  `json:"worstPerformer,omitempty"`
}

// HoldingValuation is a holding together with its derived figures.
type HoldingValuation struct {
	HoldingRecord
	Investment   decimal.Decimal `json:"investment"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	ProfitLoss   ProfitLoss      `json:"profitLoss"`
	PricingState PricingState    `json:"pricingState"`
}

// Valuate derives the figures of a single holding.
func Valuate(h HoldingRecord) HoldingValuation {
	return HoldingValuation{
		HoldingRecord: h,
		Investment:    h.Investment(),
		CurrentValue:  h.CurrentValue(),
		ProfitLoss:    h.ProfitLoss(),
		PricingState:  h.PricingState(),
	}
}

// ComputeMetrics totals the holdings, rounded to two decimals, and picks the best and worst performer
// by profit/loss percentage. Ties go to the holding stored first.
func ComputeMetrics(holdings []HoldingRecord) PortfolioMetrics {
	m := PortfolioMetrics{
		TotalInvestment:           decimal.Zero,
		TotalCurrentValue:         decimal.Zero,
		TotalProfitLoss:           decimal.Zero,
		TotalProfitLossPercentage: decimal.Zero,
		HoldingsCount:             len(holdings),
	}
	if len(holdings) == 0 {
		return m
	}

	best, worst := 0, 0
	bestPct := holdings[0].ProfitLoss().Percentage
	worstPct := bestPct
	for i := range holdings {
		h := &holdings[i]
		m.TotalInvestment = m.TotalInvestment.Add(h.Investment())
		m.TotalCurrentValue = m.TotalCurrentValue.Add(h.CurrentValue())
		if i == 0 {
			continue
		}
		pct := h.ProfitLoss().Percentage
		if pct.GreaterThan(bestPct) {
			best, bestPct = i, pct
		}
		if pct.LessThan(worstPct) {
			worst, worstPct = i, pct
		}
	}

	m.TotalProfitLoss = m.TotalCurrentValue.Sub(m.TotalInvestment)
	if m.TotalInvestment.IsPositive() {
		m.TotalProfitLossPercentage = m.TotalProfitLoss.Div(m.TotalInvestment).Mul(hundred).Round(2)
	}
	m.TotalInvestment = m.TotalInvestment.Round(2)
	m.TotalCurrentValue = m.TotalCurrentValue.Round(2)
	m.TotalProfitLoss = m.TotalProfitLoss.Round(2)
	bestCopy, worstCopy := holdings[best].Clone(), holdings[worst].Clone()
	m.BestPerformer, m.WorstPerformer = &bestCopy, &worstCopy
	return m
}
