package accounts

import (
	"context"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// Logout revokes the session behind the refresh token. Idempotent: an
// empty or unknown token is a no-op so repeated logouts always succeed.
// A repo failure is not an unknown token and propagates.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	u, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return nil
		}
		return err
	}
	if err := s.users.ClearRefreshToken(ctx, u.ID); err != nil {
		return err
	}
	s.audit("user.logout", map[string]string{"user_id": u.ID})
	return nil
}
