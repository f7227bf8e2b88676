package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finblog/backend/internal/db"
	"github.com/finblog/backend/internal/models"
)

// portfolioRow is the settings and sync state of one portfolio.
type portfolioRow struct {
	ID                     string    `gorm:"primaryKey;column:id;type:varchar(255)"`
	AutoRefresh            bool      `gorm:"column:auto_refresh;not null"`
	RefreshIntervalMinutes int       `gorm:"column:refresh_interval_minutes;not null"`
	BaseCurrency           string    `gorm:"column:base_currency;type:varchar(10);not null"`
	LastSyncTimestamp      time.Time `gorm:"column:last_sync_timestamp;not null"`
	UpdatedAt              time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (portfolioRow) TableName() string { return "portfolios" }

// holdingRow is one holding; Position keeps the portfolio order. Amounts are
// stored as their decimal text so sqlite does not coerce them to REAL.
type holdingRow struct {
	PortfolioID     string              `gorm:"primaryKey;column:portfolio_id;type:varchar(255)"`
	ID              string              `gorm:"primaryKey;column:id;type:varchar(255)"`
	Position        int                 `gorm:"column:position;not null"`
	Symbol          string              `gorm:"column:symbol;type:varchar(32);not null;index"`
	DisplayName     string              `gorm:"column:display_name;type:varchar(255);not null"`
	Quantity        decimal.Decimal     `gorm:"column:quantity;type:varchar(64);not null"`
	BuyPrice        decimal.Decimal     `gorm:"column:buy_price;type:varchar(64);not null"`
	BuyDate         time.Time           `gorm:"column:buy_date;not null"`
	CurrentPrice    decimal.NullDecimal `gorm:"column:current_price;type:varchar(64)"`
	LastPriceUpdate *time.Time          `gorm:"column:last_price_update"`
}

func (holdingRow) TableName() string { return "portfolio_holdings" }

type portfolioRepository struct {
	db *db.DB
}

// NewPortfolioRepository creates a gorm-backed portfolio repository and
// migrates its tables.
func NewPortfolioRepository(database *db.DB) (PortfolioRepository, error) {
	if err := database.Migrate(&portfolioRow{}, &holdingRow{}); err != nil {
		return nil, err
	}
	return &portfolioRepository{db: database}, nil
}

func (r *portfolioRepository) Load(ctx context.Context, id string) (*models.Portfolio, error) {
	var row portfolioRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewPortfolio(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio %s: %w", id, err)
	}

	var rows []holdingRow
	if err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", id).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load holdings of %s: %w", id, err)
	}

	p := &models.Portfolio{
		Holdings:          make([]models.HoldingRecord, 0, len(rows)),
		LastSyncTimestamp: row.LastSyncTimestamp.UTC(),
		Settings: models.Settings{
			AutoRefresh:            row.AutoRefresh,
			RefreshIntervalMinutes: row.RefreshIntervalMinutes,
			BaseCurrency:           row.BaseCurrency,
		},
	}
	for _, hr := range rows {
		p.Holdings = append(p.Holdings, hr.toModel())
	}
	return p, nil
}

func (r *portfolioRepository) Save(ctx context.Context, id string, p *models.Portfolio) error {
	row := portfolioRow{
		ID:                     id,
		AutoRefresh:            p.Settings.AutoRefresh,
		RefreshIntervalMinutes: p.Settings.RefreshIntervalMinutes,
		BaseCurrency:           p.Settings.BaseCurrency,
		LastSyncTimestamp:      p.LastSyncTimestamp.UTC(),
	}
	rows := make([]holdingRow, len(p.Holdings))
	for i, h := range p.Holdings {
		rows[i] = newHoldingRow(id, i, h)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to save portfolio: %w", err)
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&holdingRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear holdings: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save holdings: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save portfolio %s: %w", id, err)
	}
	return nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&holdingRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&portfolioRow{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete portfolio %s: %w", id, err)
	}
	return nil
}

func (r *portfolioRepository) List(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&portfolioRow{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	return ids, nil
}

func newHoldingRow(portfolioID string, position int, h models.HoldingRecord) holdingRow {
	row := holdingRow{
		PortfolioID: portfolioID,
		ID:          h.ID,
		Position:    position,
		Symbol:      h.Symbol,
		DisplayName: h.DisplayName,
		Quantity:    h.Quantity,
		BuyPrice:    h.BuyPrice,
		BuyDate:     h.BuyDate.Time(),
	}
	if h.CurrentPrice != nil {
		row.CurrentPrice = decimal.NewNullDecimal(*h.CurrentPrice)
	}
	if h.LastPriceUpdate != nil {
		t := h.LastPriceUpdate.UTC()
		row.LastPriceUpdate = &t
	}
	return row
}

func (row holdingRow) toModel() models.HoldingRecord {
	h := models.HoldingRecord{
		ID:          row.ID,
		Symbol:      row.Symbol,
		DisplayName: row.DisplayName,
		Quantity:    row.Quantity,
		BuyPrice:    row.BuyPrice,
		BuyDate:     models.DateOf(row.BuyDate.UTC()),
	}
	if row.CurrentPrice.Valid {
		price := row.CurrentPrice.Decimal
		h.CurrentPrice = &price
	}
	if row.LastPriceUpdate != nil {
		t := row.LastPriceUpdate.UTC()
		h.LastPriceUpdate = &t
	}
	return h
}
