package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/models"
)

// csvHeader is the column layout of the CSV export.
var csvHeader = []string{
	"Symbol", "Name", "Quantity", "BuyPrice", "BuyDate", "CurrentPrice",
	"Investment", "CurrentValue", "ProfitLoss", "ProfitLossPercent",
}

// snapshot mirrors models.Portfolio with optional fields so that missing
// settings or sync time can be told apart from zero values on import.
type snapshot struct {
	Holdings          []models.HoldingRecord `json:"holdings"`
	LastSyncTimestamp *time.Time             `json:"lastSyncTimestamp"`
	Settings          *models.Settings       `json:"settings"`
}

// ExportSnapshot serialises the full portfolio as indented JSON.
func (s *PortfolioService) ExportSnapshot(ctx context.Context, id string) ([]byte, error) {
	p, err := s.GetPortfolio(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// ImportSnapshot replaces the stored portfolio with the one in data. The
// snapshot is fully decoded and validated first; on any failure the stored
// portfolio is left untouched and the error matches ErrImportFormat.
func (s *PortfolioService) ImportSnapshot(ctx context.Context, id string, data []byte) (*models.Portfolio, error) {
	p, err := decodeSnapshot(data, s.now())
	if err != nil {
		return nil, err
	}

	unlock := s.lock(id)
	defer unlock()
	if err := s.repo.Save(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to save imported portfolio: %w", err)
	}
	s.logger.Info("portfolio imported", zap.String("portfolio", id), zap.Int("holdings", len(p.Holdings)))
	return p, nil
}

func decodeSnapshot(data []byte, now time.Time) (*models.Portfolio, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.ImportFormat("snapshot must be a JSON object", err)
	}
	raw, ok := fields["holdings"]
	if !ok {
		return nil, errors.ImportFormat("holdings is missing", nil)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.ImportFormat("holdings must be an array", nil)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.ImportFormat("malformed snapshot", err)
	}

	p := &models.Portfolio{
		Holdings:          snap.Holdings,
		LastSyncTimestamp: now,
		Settings:          models.DefaultSettings(),
	}
	if p.Holdings == nil {
		p.Holdings = []models.HoldingRecord{}
	}
	for i := range p.Holdings {
		p.Holdings[i].Symbol = models.NormalizeSymbol(p.Holdings[i].Symbol)
		p.Holdings[i].DisplayName = strings.TrimSpace(p.Holdings[i].DisplayName)
	}
	if snap.LastSyncTimestamp != nil {
		p.LastSyncTimestamp = snap.LastSyncTimestamp.UTC()
	}
	if snap.Settings != nil {
		p.Settings = *snap.Settings
	}
	if err := p.Validate(); err != nil {
		return nil, errors.ImportFormat("invalid portfolio", err)
	}
	return p, nil
}

// ExportCSV writes one row per holding. Money values use two decimals and a
// missing current price is written as N/A.
func (s *PortfolioService) ExportCSV(ctx context.Context, id string, w io.Writer) error {
	p, err := s.GetPortfolio(ctx, id)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, h := range p.Holdings {
		v := models.Valuate(h)
		current := "N/A"
		if h.CurrentPrice != nil {
			current = h.CurrentPrice.StringFixed(2)
		}
		row := []string{
			h.Symbol,
			h.DisplayName,
			h.Quantity.StringFixed(2),
			h.BuyPrice.StringFixed(2),
			h.BuyDate.String(),
			current,
			v.Investment.StringFixed(2),
			v.CurrentValue.StringFixed(2),
			v.ProfitLoss.Amount.StringFixed(2),
			v.ProfitLoss.Percentage.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
