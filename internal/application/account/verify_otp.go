package account

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// VerifyOTP checks the submitted code against the one on record and, on
// match, marks the email verified and clears the code. The transition
// happens exactly once: a second call fails with already_verified.
func (s *Service) VerifyOTP(ctx context.Context, email, submitted string) (View, error) {
	email = normalizeEmail(email)
	submitted = strings.TrimSpace(submitted)

	if email == "" {
		return View{}, domain.ErrMissingField("email")
	}
	if submitted == "" {
		return View{}, domain.ErrMissingField("otp")
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return View{}, err
	}

	if a.EmailVerified {
		return View{}, domain.ErrAlreadyVerified()
	}
	if !a.HasOTP() {
		return View{}, domain.ErrOTPNotIssued()
	}
	if s.now().After(a.OTPExpiry) {
		return View{}, domain.ErrOTPExpired()
	}
	// Constant-time compare; the code is low entropy but there is no reason
	// to leak a prefix match through timing.
	if subtle.ConstantTimeCompare([]byte(a.OTP), []byte(submitted)) != 1 {
		return View{}, domain.ErrOTPMismatch()
	}

	a.EmailVerified = true
	a.VerifiedAt = s.now()
	a.OTP = ""
	a.OTPExpiry = time.Time{}

	updated, err := s.accounts.Update(ctx, a)
	if err != nil {
		return View{}, err
	}

	s.log.Info().Str("account_id", updated.ID).Msg("otp_verified")
	return viewOf(updated), nil
}
