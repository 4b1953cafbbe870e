package dto

import (
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// -------- Catalog --------

type ProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

func (r *ProductRequest) Validate() error {
	return runValidate(r)
}

type ProductView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToProductView(p domain.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}
}

func ToProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ToProductView(p))
	}
	return views
}
