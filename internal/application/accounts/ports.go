package accounts

import (
	"context"
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

/*
UserRepo
--------
Persistence port for user accounts.
Only describes WHAT the account service needs, not HOW it's stored.

Lookups are active-scoped: soft-deleted users are invisible everywhere
except GetByRefreshToken, which has to find the session owner even if
the account was deactivated after login.
*/
type UserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetActiveByID(ctx context.Context, id string) (domain.User, error)
	GetActiveByEmail(ctx context.Context, email string) (domain.User, error)
	GetByRefreshToken(ctx context.Context, token string) (domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	ActiveEmailExists(ctx context.Context, email string) (bool, error)

	// Updates needed by business flows
	UpdateProfile(ctx context.Context, userID, firstname, lastname string) error
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
	SetRefreshToken(ctx context.Context, userID string, token string) error
	ClearRefreshToken(ctx context.Context, userID string) error
	Deactivate(ctx context.Context, userID string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenIssuer
-----------
Issues and verifies the two JWT classes. Access and refresh tokens are
signed with separate secrets; a token of one class never verifies
against the other.
*/
type TokenClaims struct {
	UserID string
	Exp    time.Time
}

type TokenIssuer interface {
	SignAccessToken(userID string, ttl time.Duration) (string, error)
	SignRefreshToken(userID string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
	VerifyRefreshToken(token string) (TokenClaims, error)
}

/*
EventPublisher
--------------
Publishes account events to RabbitMQ. Downstream consumers (mailers,
analytics) pick these up; the account service never sends email itself.
*/
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, evt UserCreatedEvent) error
}

type UserCreatedEvent struct {
	UserID    string
	Email     string
	Firstname string
}
