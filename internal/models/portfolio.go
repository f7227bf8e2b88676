package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/errors"
)

// Settings are the per-portfolio preferences of the tracker.
type Settings struct {
	AutoRefresh            bool   `json:"autoRefresh"`
	RefreshIntervalMinutes int    `json:"refreshIntervalMinutes"`
	BaseCurrency           string `json:"baseCurrency"`
}

// DefaultSettings are used for a portfolio that was never saved.
func DefaultSettings() Settings {
	return Settings{AutoRefresh: true, RefreshIntervalMinutes: 5, BaseCurrency: "USD"}
}

func (s *Settings) Validate() error {
	if s.RefreshIntervalMinutes <= 0 {
		return &errors.ErrValidation{Field: "refreshIntervalMinutes", Message: "refresh interval must be a positive number of minutes"}
	}
	code := strings.ToUpper(strings.TrimSpace(s.BaseCurrency))
	if code == "" || money.GetCurrency(code) == nil {
		return &errors.ErrValidation{Field: "baseCurrency", Message: fmt.Sprintf("unknown currency %q", s.BaseCurrency)}
	}
	return nil
}

// RefreshInterval returns the interval as a duration.
func (s Settings) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshIntervalMinutes) * time.Minute
}

// Portfolio owns an ordered list of holdings.
type Portfolio struct {
	Holdings          []HoldingRecord `json:"holdings"`
	LastSyncTimestamp time.Time       `json:"lastSyncTimestamp"`
	Settings          Settings        `json:"settings"`
}

// NewPortfolio returns the empty default portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{Holdings: []HoldingRecord{}, Settings: DefaultSettings()}
}

// Clone returns a deep copy of p.
func (p *Portfolio) Clone() *Portfolio {
	out := &Portfolio{
		Holdings:          make([]HoldingRecord, len(p.Holdings)),
		LastSyncTimestamp: p.LastSyncTimestamp,
		Settings:          p.Settings,
	}
	for i, h := range p.Holdings {
		out.Holdings[i] = h.Clone()
	}
	return out
}

// IndexOf returns the position of the holding with the given id, or -1.
func (p *Portfolio) IndexOf(id string) int {
	for i := range p.Holdings {
		if p.Holdings[i].ID == id {
			return i
		}
	}
	return -1
}

// Symbols returns the distinct symbols held, in first-seen order.
func (p *Portfolio) Symbols() []string {
	seen := make(map[string]bool, len(p.Holdings))
	var out []string
	for _, h := range p.Holdings {
		s := NormalizeSymbol(h.Symbol)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ApplyPrices sets the current price of every holding whose symbol has an
// entry in prices. Holdings without an entry keep their previous price.
// It returns the number of holdings updated.
func (p *Portfolio) ApplyPrices(prices map[string]decimal.Decimal, at time.Time) int {
	if len(prices) == 0 {
		return 0
	}
	normalized := make(map[string]decimal.Decimal, len(prices))
	for s, price := range prices {
		normalized[NormalizeSymbol(s)] = price
	}
	updated := 0
	for i := range p.Holdings {
		if price, ok := normalized[NormalizeSymbol(p.Holdings[i].Symbol)]; ok {
			p.Holdings[i].SetPrice(price, at)
			updated++
		}
	}
	return updated
}

// Validate checks every holding, id uniqueness and the settings.
func (p *Portfolio) Validate() error {
	seen := make(map[string]bool, len(p.Holdings))
	for i := range p.Holdings {
		h := &p.Holdings[i]
		if err := h.Validate(); err != nil {
			return fmt.Errorf("holding %d: %w", i, err)
		}
		if seen[h.ID] {
			return &errors.ErrValidation{Field: "id", Message: fmt.Sprintf("duplicate holding id %q", h.ID)}
		}
		seen[h.ID] = true
	}
	return p.Settings.Validate()
}
