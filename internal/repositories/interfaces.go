package repositories

import (
	"context"

	"github.com/finblog/backend/internal/models"
)

// PortfolioRepository persists whole portfolios. Load and Save are atomic:
// a Save either stores the complete portfolio or nothing.
type PortfolioRepository interface {
	// Load returns the stored portfolio, or the default empty portfolio when
	// id was never saved.
	Load(ctx context.Context, id string) (*models.Portfolio, error)
	Save(ctx context.Context, id string, p *models.Portfolio) error
	// Delete removes the portfolio and its holdings. Deleting an unknown id
	// is not an error.
	Delete(ctx context.Context, id string) error
	// List returns the ids of all stored portfolios.
	List(ctx context.Context) ([]string, error)
}
