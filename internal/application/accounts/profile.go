package accounts

import (
	"context"
	"strings"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// List returns all active users. Password hashes are stripped before
// anything leaves the service.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Get returns a single active user by id.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	u, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// UpdateProfile changes the user's name fields. Email is immutable.
func (s *Service) UpdateProfile(ctx context.Context, id, firstname, lastname string) (domain.User, error) {
	firstname = strings.TrimSpace(firstname)
	lastname = strings.TrimSpace(lastname)

	switch {
	case id == "":
		return domain.User{}, domain.ErrMissingField("id")
	case firstname == "":
		return domain.User{}, domain.ErrMissingField("firstname")
	case lastname == "":
		return domain.User{}, domain.ErrMissingField("lastname")
	}

	u, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if err := s.users.UpdateProfile(ctx, u.ID, firstname, lastname); err != nil {
		return domain.User{}, err
	}

	u.Firstname = firstname
	u.Lastname = lastname
	u.PasswordHash = ""
	return u, nil
}

// UpdatePassword sets a new password after confirming it was typed twice
// the same way. The session is left intact. Returns the user so callers
// can echo it back.
func (s *Service) UpdatePassword(ctx context.Context, id, password, confirm string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if password == "" {
		return domain.User{}, domain.ErrMissingField("password")
	}
	if len(password) < 6 {
		return domain.User{}, domain.ErrWeakPassword("min length 6")
	}
	if password != confirm {
		return domain.User{}, domain.ErrPasswordMismatch()
	}

	u, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return domain.User{}, err
	}

	s.audit("user.password_update", map[string]string{"user_id": u.ID})
	u.PasswordHash = ""
	return u, nil
}

// Deactivate soft-deletes the account and revokes its session. The row
// stays behind so the email can be reused by a fresh signup. Returns the
// user as it now stands, with Active flipped off.
func (s *Service) Deactivate(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	u, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if err := s.users.Deactivate(ctx, u.ID); err != nil {
		return domain.User{}, err
	}
	if err := s.users.ClearRefreshToken(ctx, u.ID); err != nil {
		return domain.User{}, err
	}

	s.audit("user.deactivate", map[string]string{"user_id": u.ID})
	u.Active = false
	u.RefreshToken = ""
	u.PasswordHash = ""
	return u, nil
}
