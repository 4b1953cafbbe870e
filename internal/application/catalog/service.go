package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

type Service struct {
	products ProductRepo
}

func NewService(products ProductRepo) *Service {
	return &Service{products: products}
}

type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
}

type UpdateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
}

func validateFields(name string, priceCents int64, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrMissingField("name")
	}
	if priceCents < 0 {
		return domain.ErrInvalidField("price", "negative")
	}
	if quantity < 0 {
		return domain.ErrInvalidField("quantity", "negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Product, error) {
	if err := validateFields(in.Name, in.PriceCents, in.Quantity); err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Quantity:    in.Quantity,
		Active:      true,
	}
	return s.products.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ErrMissingField("id")
	}
	return s.products.GetActiveByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListActive(ctx)
}

// Update replaces the mutable fields wholesale. Partial updates are a
// client concern; the handler decodes the full document.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ErrMissingField("id")
	}
	if err := validateFields(in.Name, in.PriceCents, in.Quantity); err != nil {
		return domain.Product{}, err
	}

	p, err := s.products.GetActiveByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.PriceCents = in.PriceCents
	p.Quantity = in.Quantity

	if err := s.products.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingField("id")
	}
	if _, err := s.products.GetActiveByID(ctx, id); err != nil {
		return err
	}
	return s.products.Deactivate(ctx, id)
}
