package security

import (
	"github.com/ultimatetechie/ecommerce-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes account passwords with bcrypt. The cost comes from
// config so tests and dev can run with a cheaper setting.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(b), nil
}

// Compare reports a non-nil error on any mismatch. Callers translate it
// into invalid_credentials; the bcrypt detail stays internal.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
