package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// AccountRepo is the in-memory account.Repo used for local development
// and as a fallback when postgres is not configured.
type AccountRepo struct {
	mu         sync.RWMutex
	byID       map[string]domain.Account
	byEmail    map[string]string // email -> accountID
	byUsername map[string]string // username -> accountID
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		byID:       make(map[string]domain.Account),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return r.byID[id], nil
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return r.byID[id], nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if _, exists := r.byEmail[a.Email]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	if _, exists := r.byUsername[a.Username]; exists {
		return domain.Account{}, domain.ErrUsernameAlreadyExists()
	}

	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
	r.byUsername[a.Username] = a.ID
	return a, nil
}

func (r *AccountRepo) Update(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[a.ID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	if id, exists := r.byEmail[a.Email]; exists && id != a.ID {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	if id, exists := r.byUsername[a.Username]; exists && id != a.ID {
		return domain.Account{}, domain.ErrUsernameAlreadyExists()
	}

	delete(r.byEmail, prev.Email)
	delete(r.byUsername, prev.Username)
	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
	r.byUsername[a.Username] = a.ID
	return a, nil
}

func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	delete(r.byID, id)
	delete(r.byEmail, a.Email)
	delete(r.byUsername, a.Username)
	return nil
}

func (r *AccountRepo) List(ctx context.Context, f account.ListFilter) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []domain.Account
	for _, a := range r.byID {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Verified != nil && a.EmailVerified != *f.Verified {
			continue
		}
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	if f.Offset >= len(all) {
		return nil, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, nil
}
