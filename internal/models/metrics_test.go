package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holding(id, symbol string, qty, buy int64, current *int64) HoldingRecord {
	h := HoldingRecord{
		ID:          id,
		Symbol:      symbol,
		DisplayName: symbol,
		Quantity:    decimal.NewFromInt(qty),
		BuyPrice:    decimal.NewFromInt(buy),
		BuyDate:     MustParseDate("2024-01-01"),
	}
	if current != nil {
		h.SetPrice(decimal.NewFromInt(*current), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	}
	return h
}

func price(v int64) *int64 { return &v }

func TestComputeMetrics_Empty(t *testing.T) {
	for _, in := range [][]HoldingRecord{nil, {}} {
		m := ComputeMetrics(in)
		assert.Equal(t, 0, m.HoldingsCount)
		assert.True(t, m.TotalInvestment.IsZero())
		assert.True(t, m.TotalCurrentValue.IsZero())
		assert.True(t, m.TotalProfitLoss.IsZero())
		assert.True(t, m.TotalProfitLossPercentage.IsZero())
		assert.Nil(t, m.BestPerformer)
		assert.Nil(t, m.WorstPerformer)
	}
}

func TestComputeMetrics_Totals(t *testing.T) {
	holdings := []HoldingRecord{
		holding("a", "AAPL", 10, 150, price(180)),
		holding("b", "MSFT", 5, 300, price(270)),
		holding("c", "NVDA", 2, 400, nil),
	}
	m := ComputeMetrics(holdings)

	assert.Equal(t, 3, m.HoldingsCount)
	assert.Equal(t, "3800", m.TotalInvestment.String())
	assert.Equal(t, "3150", m.TotalCurrentValue.String())
	assert.Equal(t, "-650", m.TotalProfitLoss.String())
	assert.Equal(t, "-17.11", m.TotalProfitLossPercentage.String())

	require.NotNil(t, m.BestPerformer)
	require.NotNil(t, m.WorstPerformer)
	assert.Equal(t, "a", m.BestPerformer.ID)
	assert.Equal(t, "b", m.WorstPerformer.ID)
}

func TestComputeMetrics_TiesKeepFirstOccurrence(t *testing.T) {
	holdings := []HoldingRecord{
		holding("first", "A", 1, 100, price(110)),
		holding("second", "B", 2, 50, price(55)),
		holding("third", "C", 1, 10, price(11)),
	}
	m := ComputeMetrics(holdings)
	assert.Equal(t, "first", m.BestPerformer.ID)
	assert.Equal(t, "first", m.WorstPerformer.ID)
}

func TestComputeMetrics_UnpricedHoldingCountsAsZeroPercent(t *testing.T) {
	holdings := []HoldingRecord{
		holding("loser", "A", 1, 100, price(90)),
		holding("unpriced", "B", 1, 100, nil),
		holding("winner", "C", 1, 100, price(120)),
	}
	m := ComputeMetrics(holdings)
	assert.Equal(t, "winner", m.BestPerformer.ID)
	assert.Equal(t, "loser", m.WorstPerformer.ID)

	only := ComputeMetrics(holdings[1:2])
	assert.Equal(t, "unpriced", only.BestPerformer.ID)
	assert.Equal(t, "-100", only.TotalProfitLoss.String())
}

func TestComputeMetrics_PerformersAreCopies(t *testing.T) {
	holdings := []HoldingRecord{holding("a", "A", 1, 100, price(120))}
	m := ComputeMetrics(holdings)
	*m.BestPerformer.CurrentPrice = decimal.NewFromInt(1)
	assert.Equal(t, "120", holdings[0].CurrentPrice.String())
}

func TestValuate(t *testing.T) {
	v := Valuate(holding("a", "AAPL", 10, 150, price(180)))
	assert.Equal(t, "1500", v.Investment.String())
	assert.Equal(t, "1800", v.CurrentValue.String())
	assert.Equal(t, "300", v.ProfitLoss.Amount.String())
	assert.Equal(t, "20", v.ProfitLoss.Percentage.String())
	assert.Equal(t, Priced, v.PricingState)
}
