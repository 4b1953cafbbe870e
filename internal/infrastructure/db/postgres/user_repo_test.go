package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

var userCols = []string{
	"id", "firstname", "lastname", "email", "password_hash",
	"refresh_token", "active", "created_at",
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	now := time.Now().UTC()

	t.Run("success_and_email_normalized", func(t *testing.T) {
		rows := sqlmock.NewRows(userCols).
			AddRow("u1", "Ada", "Lovelace", "ada@x.com", "hash", nil, true, now)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("u1", "Ada", "Lovelace", "ada@x.com", "hash", true).
			WillReturnRows(rows)

		u, err := repo.Create(context.Background(), domain.User{
			ID: "u1", Firstname: "Ada", Lastname: "Lovelace",
			Email: "  ADA@x.com ", PasswordHash: "hash", Active: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "ada@x.com", u.Email)
		assert.Empty(t, u.RefreshToken)
	})

	t.Run("duplicate_maps_to_conflict", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_active_idx"`))

		_, err := repo.Create(context.Background(), domain.User{
			ID: "u2", Firstname: "A", Lastname: "B", Email: "dup@x.com", PasswordHash: "hash", Active: true,
		})
		assert.True(t, domain.Is(err, "email_already_exists"), "got %v", err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetActiveByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("success_mapping", func(t *testing.T) {
		rows := sqlmock.NewRows(userCols).
			AddRow("u1", "Ada", "Lovelace", "ada@x.com", "hash", "rt", true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email =").
			WithArgs("ada@x.com").
			WillReturnRows(rows)

		u, err := repo.GetActiveByEmail(context.Background(), " Ada@X.com ")
		assert.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "hash", u.PasswordHash)
		assert.Equal(t, "rt", u.RefreshToken)
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email =").
			WithArgs("none@x.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetActiveByEmail(context.Background(), "none@x.com")
		assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("empty_token_rejected_before_query", func(t *testing.T) {
		_, err := repo.GetByRefreshToken(context.Background(), "")
		assert.True(t, domain.Is(err, "missing_field"), "got %v", err)
	})

	t.Run("miss_maps_to_not_found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE refresh_token =").
			WithArgs("rt").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByRefreshToken(context.Background(), "rt")
		assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	rows := sqlmock.NewRows(userCols).
		AddRow("u1", "Ada", "Lovelace", "ada@x.com", "h1", nil, true, time.Now()).
		AddRow("u2", "Grace", "Hopper", "grace@x.com", "h2", "rt", true, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE active").WillReturnRows(rows)

	users, err := repo.ListActive(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "u2", users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ActiveEmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ada@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ActiveEmailExists(context.Background(), "ADA@x.com")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Updates_RowsAffectedMapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("set_refresh_token_ok", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("u1", "rt").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetRefreshToken(context.Background(), "u1", "rt"))
	})

	t.Run("clear_refresh_token_missing_user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ClearRefreshToken(context.Background(), "ghost")
		assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	})

	t.Run("deactivate_already_inactive_is_not_found", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Deactivate(context.Background(), "u1")
		assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	})

	t.Run("update_profile_ok", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("u1", "Grace", "Hopper").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateProfile(context.Background(), "u1", "Grace", "Hopper"))
	})

	t.Run("update_password_hash_db_error", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("u1", "newhash").
			WillReturnError(errors.New("connection refused"))

		err := repo.UpdatePasswordHash(context.Background(), "u1", "newhash")
		assert.True(t, domain.Is(err, "db_unavailable"), "got %v", err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
