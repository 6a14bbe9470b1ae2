package account

import (
	"context"
	"strings"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// Approve moves a verified account into the approved state. Approval before
// email verification is disallowed. Approving an already-approved account
// succeeds again; there is no already-approved guard.
func (s *Service) Approve(ctx context.Context, caller Caller, accountID string) (View, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return View{}, domain.ErrMissingField("account_id")
	}
	if err := requireAtLeast(caller, domain.RoleManager); err != nil {
		return View{}, err
	}

	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return View{}, err
	}
	if !a.EmailVerified {
		return View{}, domain.ErrEmailNotVerified(a.ID)
	}

	a.Status = domain.StatusApproved
	updated, err := s.accounts.Update(ctx, a)
	if err != nil {
		return View{}, err
	}

	// Transition is durable at this point; the notice is best-effort.
	if err := s.notifier.SendApprovalNotice(ctx, updated.Email, updated.Username); err != nil {
		s.log.Warn().Err(err).
			Str("account_id", updated.ID).
			Msg("approval notice dispatch failed")
	}

	s.log.Info().
		Str("account_id", updated.ID).
		Str("approver_id", caller.AccountID).
		Msg("account_approved")
	return viewOf(updated), nil
}
