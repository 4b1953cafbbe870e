package accounts

import (
	"context"
	"strings"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// Login authenticates a user and issues both token classes.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
// Soft-deleted accounts fail the same way as unknown ones.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials; anything else (a DB
		// outage, say) is not an auth failure and must surface as-is.
		if domain.Is(err, "user_not_found") {
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	toks, err := s.issueTokens(ctx, u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("user.login", map[string]string{"user_id": u.ID})
	u.PasswordHash = ""
	return LoginResult{User: u, Tokens: toks}, nil
}
