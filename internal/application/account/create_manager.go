package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// CreateManager is the admin-only path that creates a manager account
// already verified and approved. It is the only operation that
// short-circuits the OTP and approval steps of the lifecycle.
func (s *Service) CreateManager(ctx context.Context, caller Caller, username, email, password string) (View, error) {
	if err := requireAtLeast(caller, domain.RoleAdmin); err != nil {
		return View{}, err
	}

	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if err := validateUsername(username); err != nil {
		return View{}, err
	}
	if err := validateEmail(email); err != nil {
		return View{}, err
	}
	if err := validatePassword(password); err != nil {
		return View{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return View{}, domain.ErrHashFailed(err)
	}

	a := domain.Account{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		Role:          string(domain.RoleManager),
		Status:        domain.StatusApproved,
		EmailVerified: true,
		VerifiedAt:    s.now(),
	}

	created, err := s.accounts.Create(ctx, a)
	if err != nil {
		return View{}, err
	}

	s.log.Info().
		Str("account_id", created.ID).
		Str("admin_id", caller.AccountID).
		Msg("manager_created")
	return viewOf(created), nil
}
