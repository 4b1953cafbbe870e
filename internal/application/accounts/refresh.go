package accounts

import (
	"context"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// Refresh exchanges the refresh token from the cookie for a fresh access
// token. The refresh token itself is not rotated; it stays valid until it
// expires, a new login replaces it, or a logout clears it.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if refreshToken == "" {
		return AuthTokens{}, domain.ErrTokenMissing()
	}

	// The stored token is the session record: no match means no session.
	// Repo failures other than a miss stay infrastructure errors.
	u, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return AuthTokens{}, domain.ErrUnknownSession()
		}
		return AuthTokens{}, err
	}

	// Signature and expiry must check out, and the token must have been
	// minted for the user that holds it.
	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil || claims.UserID != u.ID {
		return AuthTokens{}, domain.ErrForbidden()
	}

	access, err := s.issuer.SignAccessToken(u.ID, s.accessTTL)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenSignFailed(err)
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
