package domain

import "time"

// User is an account record. PasswordHash is only populated by lookups that
// explicitly need it (login); read paths leave it empty.
type User struct {
	ID           string
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	// RefreshToken is the last refresh token issued at login. A new login
	// overwrites it, so at most one refresh token is accepted per user.
	RefreshToken string
	Active       bool
	CreatedAt    time.Time
}
