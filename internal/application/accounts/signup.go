package accounts

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

type SignUpInput struct {
	Firstname       string
	Lastname        string
	Email           string
	Password        string
	ConfirmPassword string
}

// SignUp creates a new active account. Email uniqueness is only enforced
// against active accounts, so an address freed by a soft delete can be
// reused.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (domain.User, error) {
	in.Firstname = strings.TrimSpace(in.Firstname)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	switch {
	case in.Firstname == "":
		return domain.User{}, domain.ErrMissingField("firstname")
	case in.Lastname == "":
		return domain.User{}, domain.ErrMissingField("lastname")
	case in.Email == "":
		return domain.User{}, domain.ErrMissingField("email")
	case in.Password == "":
		return domain.User{}, domain.ErrMissingField("password")
	}
	if len(in.Password) < 6 {
		return domain.User{}, domain.ErrWeakPassword("min length 6")
	}
	if in.Password != in.ConfirmPassword {
		return domain.User{}, domain.ErrPasswordMismatch()
	}

	exists, err := s.users.ActiveEmailExists(ctx, in.Email)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		PasswordHash: hash,
		Active:       true,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	// Best effort: a lost event must not fail the signup.
	_ = s.pub.PublishUserCreated(ctx, UserCreatedEvent{
		UserID:    created.ID,
		Email:     created.Email,
		Firstname: created.Firstname,
	})

	s.audit("user.signup", map[string]string{"user_id": created.ID})
	created.PasswordHash = ""
	return created, nil
}
