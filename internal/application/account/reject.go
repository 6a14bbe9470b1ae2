package account

import (
	"context"
	"strings"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

const defaultRejectionReason = "Your account was rejected by an admin."

// Reject permanently deletes the account record and sends a best-effort
// rejection notice. Rejection is a hard delete, not a tombstone: the email
// becomes free for a fresh registration and no audit record is kept.
func (s *Service) Reject(ctx context.Context, caller Caller, accountID, reason string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domain.ErrMissingField("account_id")
	}
	if err := requireAtLeast(caller, domain.RoleManager); err != nil {
		return err
	}

	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, a.ID); err != nil {
		return err
	}

	if strings.TrimSpace(reason) == "" {
		reason = defaultRejectionReason
	}
	if err := s.notifier.SendRejectionNotice(ctx, a.Email, a.Username, reason); err != nil {
		s.log.Warn().Err(err).
			Str("account_id", a.ID).
			Msg("rejection notice dispatch failed")
	}

	s.log.Info().
		Str("account_id", a.ID).
		Str("approver_id", caller.AccountID).
		Msg("account_rejected")
	return nil
}
