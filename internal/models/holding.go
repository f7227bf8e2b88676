package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// PricingState tells whether a holding has ever received a market price.
// A holding only moves from NoPriceYet to Priced.
type PricingState string

const (
	NoPriceYet PricingState = "no_price_yet"
	Priced     PricingState = "priced"
)

// HoldingRecord is one purchased position in a portfolio.
type HoldingRecord struct {
	ID              string           `json:"id"`
	Symbol          string           `json:"symbol"`
	DisplayName     string           `json:"displayName"`
	Quantity        decimal.Decimal  `json:"quantity"`
	BuyPrice        decimal.Decimal  `json:"buyPrice"`
	BuyDate         Date             `json:"buyDate"`
	CurrentPrice    *decimal.Decimal `json:"currentPrice,omitempty"`
	LastPriceUpdate *time.Time       `json:"lastPriceUpdate,omitempty"`
}

// ProfitLoss is the unrealized result of a holding.
type ProfitLoss struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// HoldingInput is the payload used to add a holding.
type HoldingInput struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	BuyPrice decimal.Decimal `json:"buyPrice"`
	BuyDate  Date            `json:"buyDate"`
}

// HoldingPatch carries the fields of a partial update; nil fields are kept.
type HoldingPatch struct {
	Symbol       *string          `json:"symbol,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	BuyPrice     *decimal.Decimal `json:"buyPrice,omitempty"`
	BuyDate      *Date            `json:"buyDate,omitempty"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate checks the input of a new holding against today's date.
func (in *HoldingInput) Validate(today Date) error {
	if NormalizeSymbol(in.Symbol) == "" {
		return &errors.ErrValidation{Field: "symbol", Message: "symbol is required"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return &errors.ErrValidation{Field: "name", Message: "name is required"}
	}
	if !in.Quantity.IsPositive() {
		return &errors.ErrValidation{Field: "quantity", Message: "quantity must be positive"}
	}
	if !in.BuyPrice.IsPositive() {
		return &errors.ErrValidation{Field: "buyPrice", Message: "buy price must be positive"}
	}
	return validateBuyDate(in.BuyDate, today)
}

func validateBuyDate(d, today Date) error {
	if d.IsZero() {
		return &errors.ErrValidation{Field: "buyDate", Message: "buy date is required"}
	}
	if d.After(today) {
		return &errors.ErrValidation{Field: "buyDate", Message: "buy date " + d.String() + " is in the future"}
	}
	return nil
}

// NewHolding builds a holding from validated input.
func NewHolding(id string, in HoldingInput) HoldingRecord {
	return HoldingRecord{
		ID:          id,
		Symbol:      NormalizeSymbol(in.Symbol),
		DisplayName: strings.TrimSpace(in.Name),
		Quantity:    in.Quantity,
		BuyPrice:    in.BuyPrice,
		BuyDate:     in.BuyDate,
	}
}

// Validate checks the structural invariants of a stored holding.
func (h *HoldingRecord) Validate() error {
	if h.ID == "" {
		return &errors.ErrValidation{Field: "id", Message: "id is required"}
	}
	if NormalizeSymbol(h.Symbol) == "" {
		return &errors.ErrValidation{Field: "symbol", Message: "symbol is required"}
	}
	if !h.Quantity.IsPositive() {
		return &errors.ErrValidation{Field: "quantity", Message: "quantity must be positive"}
	}
	if !h.BuyPrice.IsPositive() {
		return &errors.ErrValidation{Field: "buyPrice", Message: "buy price must be positive"}
	}
	if h.BuyDate.IsZero() {
		return &errors.ErrValidation{Field: "buyDate", Message: "buy date is required"}
	}
	if h.CurrentPrice != nil && !h.CurrentPrice.IsPositive() {
		return &errors.ErrValidation{Field: "currentPrice", Message: "current price must be positive"}
	}
	return nil
}

// Apply merges the patch into a copy of h. The copy is validated before it
// is returned; h itself is never modified.
func (p *HoldingPatch) Apply(h HoldingRecord, today Date, now time.Time) (HoldingRecord, error) {
	out := h.Clone()
	if p.Symbol != nil {
		out.Symbol = NormalizeSymbol(*p.Symbol)
	}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return h, &errors.ErrValidation{Field: "name", Message: "name is required"}
		}
		out.DisplayName = strings.TrimSpace(*p.Name)
	}
	if p.Quantity != nil {
		out.Quantity = *p.Quantity
	}
	if p.BuyPrice != nil {
		out.BuyPrice = *p.BuyPrice
	}
	if p.BuyDate != nil {
		if err := validateBuyDate(*p.BuyDate, today); err != nil {
			return h, err
		}
		out.BuyDate = *p.BuyDate
	}
	if p.CurrentPrice != nil {
		out.SetPrice(*p.CurrentPrice, now)
	}
	if err := out.Validate(); err != nil {
		return h, err
	}
	return out, nil
}

// SetPrice records a market price and the time it was observed.
func (h *HoldingRecord) SetPrice(price decimal.Decimal, at time.Time) {
	h.CurrentPrice = &price
	h.LastPriceUpdate = &at
}

func (h *HoldingRecord) PricingState() PricingState {
	if h.CurrentPrice == nil {
		return NoPriceYet
	}
	return Priced
}

// Clone returns a copy that shares no pointers with h.
func (h *HoldingRecord) Clone() HoldingRecord {
	out := *h
	if h.CurrentPrice != nil {
		p := *h.CurrentPrice
		out.CurrentPrice = &p
	}
	if h.LastPriceUpdate != nil {
		t := *h.LastPriceUpdate
		out.LastPriceUpdate = &t
	}
	return out
}

// Investment is the amount paid for the position.
func (h *HoldingRecord) Investment() decimal.Decimal {
	return h.Quantity.Mul(h.BuyPrice)
}

// CurrentValue is the market value of the position, zero until priced.
func (h *HoldingRecord) CurrentValue() decimal.Decimal {
	if h.CurrentPrice == nil {
		return decimal.Zero
	}
	return h.Quantity.Mul(*h.CurrentPrice)
}

// ProfitLoss is zero until the holding is priced. Amount and percentage are
// rounded to two decimals.
func (h *HoldingRecord) ProfitLoss() ProfitLoss {
	if h.CurrentPrice == nil {
		return ProfitLoss{Amount: decimal.Zero, Percentage: decimal.Zero}
	}
	investment := h.Investment()
	amount := h.CurrentValue().Sub(investment)
	pct := decimal.Zero
	if investment.IsPositive() {
		pct = amount.Div(investment).Mul(hundred)
	}
	return ProfitLoss{Amount: amount.Round(2), Percentage: pct.Round(2)}
}
