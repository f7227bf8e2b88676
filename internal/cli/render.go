package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/calculator"
	"github.com/finblog/backend/internal/models"
	"github.com/finblog/backend/internal/services"
)

// printMarkdown renders md for the terminal, or prints it verbatim with -plain.
func printMarkdown(md string) {
	if !*plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(stdout, out)
				return
			}
		}
	}
	fmt.Fprint(stdout, md)
}

// formatMoney displays d in the given ISO currency, USD when unknown.
func formatMoney(d decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		code = money.USD
		cur = money.GetCurrency(code)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	if minor.LessThan(minInt64) || minor.GreaterThan(maxInt64) {
		return formatLargeMoney(minor, cur)
	}
	return money.New(minor.IntPart(), code).Display()
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// formatLargeMoney lays out minor units that overflow int64 with the same
// template, separators and grapheme as money.Formatter.
func formatLargeMoney(minor decimal.Decimal, cur *money.Currency) string {
	sa := minor.Abs().String()
	if len(sa) <= cur.Fraction {
		sa = strings.Repeat("0", cur.Fraction-len(sa)+1) + sa
	}
	if cur.Thousand != "" {
		for i := len(sa) - cur.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + cur.Thousand + sa[i:]
		}
	}
	if cur.Fraction > 0 {
		sa = sa[:len(sa)-cur.Fraction] + cur.Decimal + sa[len(sa)-cur.Fraction:]
	}
	sa = strings.Replace(cur.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", cur.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

func formatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

var calculatorTitles = map[calculator.Kind]string{
	calculator.KindSIP:     "SIP",
	calculator.KindLumpsum: "Lumpsum",
	calculator.KindEMI:     "EMI",
	calculator.KindROI:     "ROI",
}

var amountLabels = map[calculator.Kind]string{
	calculator.KindSIP:     "Monthly investment",
	calculator.KindLumpsum: "Principal",
	calculator.KindEMI:     "Loan amount",
	calculator.KindROI:     "Principal",
}

// calculationMarkdown renders the inputs and result of one calculator run.
func calculationMarkdown(kind calculator.Kind, in calculator.Input, result any, cur string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s calculator\n\n", calculatorTitles[kind])
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| %s | %s |\n", amountLabels[kind], formatMoney(decimal.NewFromFloat(in.Amount), cur))
	fmt.Fprintf(&b, "| Annual rate | %s%% |\n", decimal.NewFromFloat(in.AnnualRatePercent))
	fmt.Fprintf(&b, "| Years | %s |\n", decimal.NewFromFloat(in.Years))

	row := func(label string, v decimal.Decimal) {
		fmt.Fprintf(&b, "| %s | %s |\n", label, formatMoney(v, cur))
	}
	switch r := result.(type) {
	case calculator.InvestmentResult:
		row("Invested amount", r.InvestedAmount)
		row("Total value", r.TotalValue)
		row("Wealth gained", r.WealthGained)
	case calculator.ROIResult:
		row("Invested amount", r.InvestedAmount)
		row("Total value", r.TotalValue)
		row("Wealth gained", r.WealthGained)
		fmt.Fprintf(&b, "| Annualized return | %s |\n", formatPercent(r.AnnualizedReturnPercent))
	case calculator.LoanResult:
		row("Monthly EMI", r.EMI)
		row("Total payable", r.TotalPayable)
		row("Total interest", r.TotalInterest)
	}
	return b.String()
}

// scheduleMarkdown renders a growth or amortization schedule as a table.
func scheduleMarkdown(schedule any, cur string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n## Year by year\n\n")
	switch points := schedule.(type) {
	case []calculator.GrowthPoint:
		fmt.Fprintln(&b, "| Year | Invested | Value | Gain |")
		fmt.Fprintln(&b, "|---:|---:|---:|---:|")
		for _, p := range points {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", p.Year,
				formatMoney(p.Invested, cur), formatMoney(p.Value, cur), formatMoney(p.Gain, cur))
		}
	case []calculator.AmortizationPoint:
		fmt.Fprintln(&b, "| Year | Principal paid | Interest paid | Balance |")
		fmt.Fprintln(&b, "|---:|---:|---:|---:|")
		for _, p := range points {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", p.Year,
				formatMoney(p.PrincipalPaid, cur), formatMoney(p.InterestPaid, cur), formatMoney(p.Balance, cur))
		}
	}
	return b.String()
}

// holdingsMarkdown renders the valuation of every holding and the totals.
func holdingsMarkdown(id string, p *models.Portfolio, holdings []models.HoldingValuation, m models.PortfolioMetrics) string {
	cur := p.Settings.BaseCurrency
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio %s\n\n", id)
	if !p.LastSyncTimestamp.IsZero() {
		fmt.Fprintf(&b, "Last sync: %s\n\n", p.LastSyncTimestamp.Format(time.RFC3339))
	}

	if len(holdings) == 0 {
		fmt.Fprintln(&b, "No holdings yet.")
		return b.String()
	}

	fmt.Fprintln(&b, "| ID | Symbol | Name | Quantity | Buy price | Price | Investment | Value | P/L | P/L % |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, h := range holdings {
		price := "N/A"
		if h.CurrentPrice != nil {
			price = formatMoney(*h.CurrentPrice, cur)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			h.ID, h.Symbol, h.DisplayName, h.Quantity,
			formatMoney(h.BuyPrice, cur), price,
			formatMoney(h.Investment, cur), formatMoney(h.CurrentValue, cur),
			formatMoney(h.ProfitLoss.Amount, cur), formatPercent(h.ProfitLoss.Percentage))
	}

	fmt.Fprintf(&b, "\n## Totals\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Holdings | %d |\n", m.HoldingsCount)
	fmt.Fprintf(&b, "| Investment | %s |\n", formatMoney(m.TotalInvestment, cur))
	fmt.Fprintf(&b, "| Current value | %s |\n", formatMoney(m.TotalCurrentValue, cur))
	fmt.Fprintf(&b, "| Profit/Loss | %s (%s) |\n", formatMoney(m.TotalProfitLoss, cur), formatPercent(m.TotalProfitLossPercentage))
	if m.BestPerformer != nil {
		fmt.Fprintf(&b, "| Best performer | %s |\n", m.BestPerformer.Symbol)
	}
	if m.WorstPerformer != nil {
		fmt.Fprintf(&b, "| Worst performer | %s |\n", m.WorstPerformer.Symbol)
	}
	return b.String()
}

func refreshMarkdown(s services.RefreshSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Refreshed %d of %d symbols, %d holdings updated.\n", s.Requested-len(s.Failed), s.Requested, s.Updated)
	if len(s.Failed) > 0 {
		fmt.Fprintln(&b, "\n| Symbol | Reason |")
		fmt.Fprintln(&b, "|:---|:---|")
		for _, f := range s.Failed {
			fmt.Fprintf(&b, "| %s | %s |\n", f.Symbol, f.Reason())
		}
	}
	return b.String()
}
