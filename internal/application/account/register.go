package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// Register creates a self-service account in the unverified, pending state
// and dispatches a verification code. The role is always forced to "user":
// whatever role the caller asked for is ignored, and asking for "manager"
// outright is forbidden unless the caller is an authenticated admin (who
// should use CreateManager instead).
//
// A notifier failure here is logged and swallowed: the account is already
// persisted and the registrant can recover via ResendOTP.
func (s *Service) Register(ctx context.Context, username, email, password, requestedRole string) (RegisterResult, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if err := validateUsername(username); err != nil {
		return RegisterResult{}, err
	}
	if err := validateEmail(email); err != nil {
		return RegisterResult{}, err
	}
	if err := validatePassword(password); err != nil {
		return RegisterResult{}, err
	}

	if strings.TrimSpace(requestedRole) == string(domain.RoleManager) {
		return RegisterResult{}, domain.ErrInsufficientRole(string(domain.RoleAdmin))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	code, err := newOTP()
	if err != nil {
		return RegisterResult{}, domain.ErrRandomFailed(err)
	}

	a := domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
		Status:       domain.StatusPending,
		OTP:          code,
		OTPExpiry:    s.now().Add(s.otpTTL),
	}

	created, err := s.accounts.Create(ctx, a)
	if err != nil {
		return RegisterResult{}, err
	}

	if err := s.notifier.SendOTP(ctx, created.Email, code); err != nil {
		s.log.Warn().Err(err).
			Str("account_id", created.ID).
			Msg("otp dispatch failed; registrant must use resend")
	}

	return RegisterResult{ID: created.ID, Email: created.Email}, nil
}
