package accounts

import (
	"context"
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	issuer TokenIssuer
	pub    EventPublisher

	accessTTL  time.Duration
	refreshTTL time.Duration
	audit      func(action string, fields map[string]string)
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	issuer TokenIssuer,
	pub EventPublisher,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &Service{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		pub:    pub,
		audit:  func(string, map[string]string) {},

		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AuthTokens is the common token output for handlers/DTO mapping.
// The refresh token travels in an HttpOnly cookie, never in a body.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64  // seconds
	TokenType    string // "Bearer"
}

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// RefreshCookieTTL is the lifetime the transport layer should give the
// refresh cookie. Kept equal to the refresh token TTL.
func (s *Service) RefreshCookieTTL() time.Duration { return s.refreshTTL }

// issueTokens mints both token classes and persists the refresh token on
// the user record. Overwriting the stored token means at most one refresh
// token is valid per user at any time.
func (s *Service) issueTokens(ctx context.Context, userID string) (AuthTokens, error) {
	access, err := s.issuer.SignAccessToken(userID, s.accessTTL)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenSignFailed(err)
	}

	refresh, err := s.issuer.SignRefreshToken(userID, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenSignFailed(err)
	}

	if err := s.users.SetRefreshToken(ctx, userID, refresh); err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
