package postgres

import (
	"database/sql"
	"time"
)

type userRow struct {
	ID           string
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	RefreshToken sql.NullString
	Active       bool
	CreatedAt    time.Time
}
