package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// UserRepo is an in-memory accounts.UserRepo. Used when no database is
// configured (local dev) and by tests that need a real repo without a
// server round-trip.
type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: map[string]domain.User{}}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = normalizeEmail(u.Email)
	for _, existing := range r.byID {
		if existing.Email == u.Email && existing.Active {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.byID[u.ID] = u
	return u, nil
}

func (r *UserRepo) GetActiveByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok || !u.Active {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) GetActiveByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = normalizeEmail(email)
	for _, u := range r.byID {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *UserRepo) GetByRefreshToken(ctx context.Context, token string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if token == "" {
		return domain.User{}, domain.ErrMissingField("refresh_token")
	}
	for _, u := range r.byID {
		if u.RefreshToken == token {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []domain.User{}
	for _, u := range r.byID {
		if u.Active {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepo) ActiveEmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = normalizeEmail(email)
	for _, u := range r.byID {
		if u.Email == email && u.Active {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID, firstname, lastname string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || !u.Active {
		return domain.ErrUserNotFound()
	}
	u.Firstname = firstname
	u.Lastname = lastname
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || !u.Active {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) SetRefreshToken(ctx context.Context, userID string, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || !u.Active {
		return domain.ErrUserNotFound()
	}
	u.RefreshToken = token
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.RefreshToken = ""
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) Deactivate(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || !u.Active {
		return domain.ErrUserNotFound()
	}
	u.Active = false
	r.byID[userID] = u
	return nil
}
