package catalog

import (
	"context"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

/*
ProductRepo
-----------
Persistence port for catalog items. Same active-scoping rule as users:
soft-deleted products are invisible to reads.
*/
type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	GetActiveByID(ctx context.Context, id string) (domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Deactivate(ctx context.Context, id string) error
}
