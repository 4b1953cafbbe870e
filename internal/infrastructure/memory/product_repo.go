package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// ProductRepo is the in-memory catalog.ProductRepo counterpart.
type ProductRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{byID: map[string]domain.Product{}}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *ProductRepo) GetActiveByID(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || !p.Active {
		return domain.Product{}, domain.ErrProductNotFound()
	}
	return p, nil
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []domain.Product{}
	for _, p := range r.byID {
		if p.Active {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[p.ID]
	if !ok || !existing.Active {
		return domain.ErrProductNotFound()
	}
	p.Active = existing.Active
	p.CreatedAt = existing.CreatedAt
	r.byID[p.ID] = p
	return nil
}

func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || !p.Active {
		return domain.ErrProductNotFound()
	}
	p.Active = false
	r.byID[id] = p
	return nil
}
