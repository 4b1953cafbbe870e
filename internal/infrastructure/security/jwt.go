package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ultimatetechie/ecommerce-api/internal/application/accounts"
	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// JWTIssuer signs and verifies both token classes with separate HS256
// secrets. An access token never verifies as a refresh token and vice
// versa.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

func NewJWTIssuer(accessSecret, refreshSecret, issuer string) *JWTIssuer {
	return &JWTIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}
}

type userClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *JWTIssuer) sign(secret []byte, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := userClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTIssuer) verify(secret []byte, token string) (accounts.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &userClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return accounts.TokenClaims{}, domain.ErrTokenExpired()
		}
		return accounts.TokenClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*userClaims)
	if !ok || !parsed.Valid {
		return accounts.TokenClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return accounts.TokenClaims{
		UserID: claims.UserID,
		Exp:    exp,
	}, nil
}

func (s *JWTIssuer) SignAccessToken(userID string, ttl time.Duration) (string, error) {
	return s.sign(s.accessSecret, userID, ttl)
}

func (s *JWTIssuer) SignRefreshToken(userID string, ttl time.Duration) (string, error) {
	return s.sign(s.refreshSecret, userID, ttl)
}

func (s *JWTIssuer) VerifyAccessToken(token string) (accounts.TokenClaims, error) {
	return s.verify(s.accessSecret, token)
}

func (s *JWTIssuer) VerifyRefreshToken(token string) (accounts.TokenClaims, error) {
	return s.verify(s.refreshSecret, token)
}
