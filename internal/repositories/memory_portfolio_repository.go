package repositories

import (
	"context"
	"slices"
	"sync"

	"github.com/finblog/backend/internal/models"
)

// memoryPortfolioRepository keeps portfolios in process memory. Portfolios
// are copied on the way in and out so callers never share state with it.
type memoryPortfolioRepository struct {
	mu         sync.RWMutex
	portfolios map[string]*models.Portfolio
}

func NewMemoryPortfolioRepository() PortfolioRepository {
	return &memoryPortfolioRepository{portfolios: make(map[string]*models.Portfolio)}
}

func (r *memoryPortfolioRepository) Load(_ context.Context, id string) (*models.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.portfolios[id]
	if !ok {
		return models.NewPortfolio(), nil
	}
	return p.Clone(), nil
}

func (r *memoryPortfolioRepository) Save(_ context.Context, id string, p *models.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.portfolios[id] = p.Clone()
	return nil
}

func (r *memoryPortfolioRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.portfolios, id)
	return nil
}

func (r *memoryPortfolioRepository) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.portfolios))
	for id := range r.portfolios {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
