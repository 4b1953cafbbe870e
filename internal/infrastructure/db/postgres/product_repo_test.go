package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

var productCols = []string{
	"id", "name", "description", "price_cents", "quantity", "active", "created_at",
}

func TestProductRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(productCols).
		AddRow("p1", "Mug", "ceramic", int64(1299), 10, true, now)

	mock.ExpectQuery("INSERT INTO products").
		WithArgs("p1", "Mug", "ceramic", int64(1299), 10, true).
		WillReturnRows(rows)

	p, err := repo.Create(context.Background(), domain.Product{
		ID: "p1", Name: "Mug", Description: "ceramic",
		PriceCents: 1299, Quantity: 10, Active: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, int64(1299), p.PriceCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetActiveByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	t.Run("success_mapping", func(t *testing.T) {
		rows := sqlmock.NewRows(productCols).
			AddRow("p1", "Mug", "ceramic", int64(1299), 10, true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
			WithArgs("p1").
			WillReturnRows(rows)

		p, err := repo.GetActiveByID(context.Background(), "p1")
		assert.NoError(t, err)
		assert.Equal(t, "Mug", p.Name)
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
			WithArgs("none").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetActiveByID(context.Background(), "none")
		assert.True(t, domain.Is(err, "product_not_found"), "got %v", err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_Update_NotFoundWhenInactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	mock.ExpectExec("UPDATE products").
		WithArgs("p1", "Mug", "ceramic", int64(100), 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), domain.Product{
		ID: "p1", Name: "Mug", Description: "ceramic", PriceCents: 100, Quantity: 1,
	})
	assert.True(t, domain.Is(err, "product_not_found"), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_Deactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	mock.ExpectExec("UPDATE products").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Deactivate(context.Background(), "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
