package account

import (
	"context"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListAccounts returns sanitized account views matching the filter.
// Manager or above only.
func (s *Service) ListAccounts(ctx context.Context, caller Caller, f ListFilter) ([]View, error) {
	if err := requireAtLeast(caller, domain.RoleManager); err != nil {
		return nil, err
	}
	if f.Status != "" && f.Status != domain.StatusPending && f.Status != domain.StatusApproved {
		return nil, domain.ErrInvalidField("status", "must be pending or approved")
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	accounts, err := s.accounts.List(ctx, f)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, viewOf(a))
	}
	return views, nil
}

// ListPendingAccounts is the approval queue: verified accounts still
// awaiting a manager/admin decision.
func (s *Service) ListPendingAccounts(ctx context.Context, caller Caller, limit, offset int) ([]View, error) {
	verified := true
	return s.ListAccounts(ctx, caller, ListFilter{
		Status:   domain.StatusPending,
		Verified: &verified,
		Limit:    limit,
		Offset:   offset,
	})
}
