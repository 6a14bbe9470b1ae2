package account

import (
	"context"
	"strings"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// ProfileUpdate is a partial update: nil fields are left untouched.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// UpdateProfile applies any subset of username/email/password to the
// caller's own account. Each supplied field is validated with the same
// constraints as registration, and a username or email that collides with
// a different live account is a conflict. The store's unique indexes stay
// as the backstop for concurrent updates.
func (s *Service) UpdateProfile(ctx context.Context, caller Caller, upd ProfileUpdate) (View, error) {
	a, err := s.accounts.GetByID(ctx, caller.AccountID)
	if err != nil {
		return View{}, err
	}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if err := validateUsername(username); err != nil {
			return View{}, err
		}
		if other, err := s.accounts.GetByUsername(ctx, username); err == nil && other.ID != a.ID {
			return View{}, domain.ErrUsernameAlreadyExists()
		}
		a.Username = username
	}

	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if err := validateEmail(email); err != nil {
			return View{}, err
		}
		if other, err := s.accounts.GetByEmail(ctx, email); err == nil && other.ID != a.ID {
			return View{}, domain.ErrEmailAlreadyExists()
		}
		a.Email = email
	}

	if upd.Password != nil {
		if err := validatePassword(*upd.Password); err != nil {
			return View{}, err
		}
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return View{}, domain.ErrHashFailed(err)
		}
		a.PasswordHash = hash
	}

	updated, err := s.accounts.Update(ctx, a)
	if err != nil {
		return View{}, err
	}

	s.log.Info().Str("account_id", updated.ID).Msg("profile_updated")
	return viewOf(updated), nil
}
