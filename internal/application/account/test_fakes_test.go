package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

/*
Fakes for ports
*/

type fakeRepo struct {
	mu sync.Mutex

	byID map[string]domain.Account

	// injected errors (if set, method returns error)
	getErr    error
	createErr error
	updateErr error
	deleteErr error
	listErr   error

	deletedIDs []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]domain.Account{}}
}

func (f *fakeRepo) put(a domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = a
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.Account{}, f.getErr
	}
	for _, a := range f.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound()
}

func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.Account{}, f.getErr
	}
	for _, a := range f.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound()
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.Account{}, f.getErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (f *fakeRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == a.Email {
			return domain.Account{}, domain.ErrEmailAlreadyExists()
		}
		if existing.Username == a.Username {
			return domain.Account{}, domain.ErrUsernameAlreadyExists()
		}
	}
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeRepo) Update(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return domain.Account{}, f.updateErr
	}
	if _, ok := f.byID[a.ID]; !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrAccountNotFound()
	}
	delete(f.byID, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Account
	for _, a := range f.byID {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Verified != nil && a.EmailVerified != *filter.Verified {
			continue
		}
		out = append(out, a)
	}
	return out, nil
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

type fakeSigner struct {
	signFn func(accountID, role string, ttl time.Duration) (string, error)
}

func (s *fakeSigner) SignSessionToken(accountID string, role string, ttl time.Duration) (string, error) {
	if s.signFn != nil {
		return s.signFn(accountID, role, ttl)
	}
	return fmt.Sprintf("jwt(%s,%s)", accountID, role), nil
}

func (s *fakeSigner) VerifySessionToken(token string) (TokenClaims, error) {
	return TokenClaims{}, nil
}

type fakeNotifier struct {
	mu sync.Mutex

	otpErr       error
	approvalErr  error
	rejectionErr error

	otps       []struct{ email, code string }
	approvals  []struct{ email, username string }
	rejections []struct{ email, username, reason string }
}

func (n *fakeNotifier) SendOTP(ctx context.Context, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.otpErr != nil {
		return n.otpErr
	}
	n.otps = append(n.otps, struct{ email, code string }{email, code})
	return nil
}

func (n *fakeNotifier) SendApprovalNotice(ctx context.Context, email, username string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.approvalErr != nil {
		return n.approvalErr
	}
	n.approvals = append(n.approvals, struct{ email, username string }{email, username})
	return nil
}

func (n *fakeNotifier) SendRejectionNotice(ctx context.Context, email, username, reason string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.rejectionErr != nil {
		return n.rejectionErr
	}
	n.rejections = append(n.rejections, struct{ email, username, reason string }{email, username, reason})
	return nil
}

func (n *fakeNotifier) lastOTP(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.otps) == 0 {
		t.Fatalf("no OTP was dispatched")
	}
	return n.otps[len(n.otps)-1].code
}

/*
Service under test
*/

func newSvcForTest(t *testing.T) (*Service, *fakeRepo, *fakeHasher, *fakeNotifier) {
	t.Helper()

	repo := newFakeRepo()
	hasher := &fakeHasher{}
	notifier := &fakeNotifier{}

	svc := NewService(repo, hasher, &fakeSigner{}, notifier, Config{
		SessionTTL: time.Hour,
		OTPTTL:     10 * time.Minute,
	}).WithLogger(zerolog.Nop())

	return svc, repo, hasher, notifier
}

var (
	adminCaller   = Caller{AccountID: "admin-1", Role: string(domain.RoleAdmin)}
	managerCaller = Caller{AccountID: "mgr-1", Role: string(domain.RoleManager)}
	userCaller    = Caller{AccountID: "user-1", Role: string(domain.RoleUser)}
)
