package accounts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID map[string]domain.User

	// injected errors (if set, method returns error)
	createErr      error
	getByIDErr     error
	getByEmailErr  error
	getByTokenErr  error
	listErr        error
	existsErr      error
	updateProfErr  error
	updatePwdErr   error
	setTokenErr    error
	clearTokenErr  error
	deactivateErr  error

	// record calls
	setTokens   []struct{ id, token string }
	clearedIDs  []string
	updatedPwd  []struct{ id, hash string }
	deactivated []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetActiveByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok || !u.Active {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetActiveByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	for _, u := range f.byID {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) GetByRefreshToken(ctx context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByTokenErr != nil {
		return domain.User{}, f.getByTokenErr
	}
	for _, u := range f.byID {
		if u.RefreshToken != "" && u.RefreshToken == token {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.User{}
	for _, u := range f.byID {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ActiveEmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, u := range f.byID {
		if u.Email == email && u.Active {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID, firstname, lastname string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateProfErr != nil {
		return f.updateProfErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return errors.New("not found")
	}
	u.Firstname = firstname
	u.Lastname = lastname
	f.byID[userID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updatePwdErr != nil {
		return f.updatePwdErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return errors.New("not found")
	}
	u.PasswordHash = newHash
	f.byID[userID] = u
	f.updatedPwd = append(f.updatedPwd, struct{ id, hash string }{userID, newHash})
	return nil
}

func (f *fakeUserRepo) SetRefreshToken(ctx context.Context, userID string, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setTokenErr != nil {
		return f.setTokenErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return errors.New("not found")
	}
	u.RefreshToken = token
	f.byID[userID] = u
	f.setTokens = append(f.setTokens, struct{ id, token string }{userID, token})
	return nil
}

func (f *fakeUserRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clearTokenErr != nil {
		return f.clearTokenErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return errors.New("not found")
	}
	u.RefreshToken = ""
	f.byID[userID] = u
	f.clearedIDs = append(f.clearedIDs, userID)
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deactivateErr != nil {
		return f.deactivateErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return errors.New("not found")
	}
	u.Active = false
	f.byID[userID] = u
	f.deactivated = append(f.deactivated, userID)
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type fakeIssuer struct {
	signAccessFn    func(userID string, ttl time.Duration) (string, error)
	signRefreshFn   func(userID string, ttl time.Duration) (string, error)
	verifyAccessFn  func(token string) (TokenClaims, error)
	verifyRefreshFn func(token string) (TokenClaims, error)
}

func (i *fakeIssuer) SignAccessToken(userID string, ttl time.Duration) (string, error) {
	if i.signAccessFn != nil {
		return i.signAccessFn(userID, ttl)
	}
	return "access:" + userID, nil
}

func (i *fakeIssuer) SignRefreshToken(userID string, ttl time.Duration) (string, error) {
	if i.signRefreshFn != nil {
		return i.signRefreshFn(userID, ttl)
	}
	return "refresh:" + userID, nil
}

func (i *fakeIssuer) VerifyAccessToken(token string) (TokenClaims, error) {
	if i.verifyAccessFn != nil {
		return i.verifyAccessFn(token)
	}
	return TokenClaims{}, errors.New("unexpected verify")
}

func (i *fakeIssuer) VerifyRefreshToken(token string) (TokenClaims, error) {
	if i.verifyRefreshFn != nil {
		return i.verifyRefreshFn(token)
	}
	// Default mirrors the fake signer: "refresh:<id>" decodes to <id>.
	const prefix = "refresh:"
	if len(token) > len(prefix) && token[:len(prefix)] == prefix {
		return TokenClaims{UserID: token[len(prefix):]}, nil
	}
	return TokenClaims{}, errors.New("invalid token")
}

type fakePublisher struct {
	publishErr error
	created    []UserCreatedEvent
}

func (p *fakePublisher) PublishUserCreated(ctx context.Context, evt UserCreatedEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.created = append(p.created, evt)
	return nil
}

/*
Service factory for tests
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeIssuer, *fakePublisher, *[]auditEntry) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	issuer := &fakeIssuer{}
	pub := &fakePublisher{}

	audits := &[]auditEntry{}
	cfg := Config{
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	}

	svc := NewService(users, hasher, issuer, pub, cfg).
		WithAudit(func(action string, fields map[string]string) {
			cp := map[string]string{}
			for k, v := range fields {
				cp[k] = v
			}
			*audits = append(*audits, auditEntry{action: action, fields: cp})
		})

	return svc, users, hasher, issuer, pub, audits
}

func seedActiveUser(f *fakeUserRepo, id, email, pwHash string) domain.User {
	u := domain.User{
		ID:           id,
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Email:        email,
		PasswordHash: pwHash,
		Active:       true,
	}
	f.byID[id] = u
	return u
}

/*
Small assertions
*/

func domainCode(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func requireDomainCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	got := domainCode(err)
	if got != wantCode {
		t.Fatalf("expected domain code %q, got %q (err=%v)", wantCode, got, err)
	}
}
