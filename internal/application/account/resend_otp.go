package account

import (
	"context"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// ResendOTP regenerates the verification code and dispatches it again.
// Unlike Register, a notifier failure here fails the whole operation: the
// caller explicitly asked for a delivery, so delivery is the contract. The
// regenerated code is already persisted by then; a further resend issues a
// fresh one anyway.
func (s *Service) ResendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if a.EmailVerified {
		return domain.ErrAlreadyVerified()
	}

	code, err := newOTP()
	if err != nil {
		return domain.ErrRandomFailed(err)
	}

	a.OTP = code
	a.OTPExpiry = s.now().Add(s.otpTTL)

	if _, err := s.accounts.Update(ctx, a); err != nil {
		return err
	}

	if err := s.notifier.SendOTP(ctx, a.Email, code); err != nil {
		return domain.ErrNotifyFailed(err)
	}

	s.log.Info().Str("account_id", a.ID).Msg("otp_resent")
	return nil
}
