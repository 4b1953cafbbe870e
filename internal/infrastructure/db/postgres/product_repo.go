package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

const productColumns = `id, name, description, price_cents, quantity, active, created_at`

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

type productRow struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Active      bool
	CreatedAt   time.Time
}

func scanProductRow(row rowScanner) (productRow, error) {
	var pr productRow
	err := row.Scan(
		&pr.ID,
		&pr.Name,
		&pr.Description,
		&pr.PriceCents,
		&pr.Quantity,
		&pr.Active,
		&pr.CreatedAt,
	)
	return pr, err
}

func toDomainProduct(pr productRow) domain.Product {
	return domain.Product{
		ID:          pr.ID,
		Name:        pr.Name,
		Description: pr.Description,
		PriceCents:  pr.PriceCents,
		Quantity:    pr.Quantity,
		Active:      pr.Active,
		CreatedAt:   pr.CreatedAt,
	}
}

// ---------- catalog.ProductRepo ----------

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		return domain.Product{}, domain.ErrMissingField("id")
	}
	if p.Name == "" {
		return domain.Product{}, domain.ErrMissingField("name")
	}

	const q = `
INSERT INTO products (id, name, description, price_cents, quantity, active)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + productColumns + `;
`
	pr, err := scanProductRow(r.db.QueryRowContext(ctx, q,
		p.ID, p.Name, p.Description, p.PriceCents, p.Quantity, p.Active,
	))
	if err != nil {
		return domain.Product{}, domain.ErrDBUnavailable(err)
	}
	return toDomainProduct(pr), nil
}

func (r *ProductRepo) GetActiveByID(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1 AND active
LIMIT 1;
`
	pr, err := scanProductRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Product{}, domain.ErrProductNotFound()
		}
		return domain.Product{}, domain.ErrDBUnavailable(err)
	}
	return toDomainProduct(pr), nil
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE active
ORDER BY created_at;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		pr, err := scanProductRow(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		products = append(products, toDomainProduct(pr))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return products, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	if p.ID == "" {
		return domain.ErrMissingField("id")
	}

	const q = `
UPDATE products
SET name = $2,
    description = $3,
    price_cents = $4,
    quantity = $5
WHERE id = $1 AND active;
`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.Quantity)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrProductNotFound()
	}
	return nil
}

func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `
UPDATE products
SET active = FALSE
WHERE id = $1 AND active;
`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrProductNotFound()
	}
	return nil
}
