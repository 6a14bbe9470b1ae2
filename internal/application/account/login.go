package account

import (
	"context"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// Login authenticates an account and issues a session token.
// IMPORTANT: a missing email and a wrong password must both surface as the
// same invalid_credentials error (avoid account enumeration). The
// verification and approval gates only apply after the credential check,
// so they never reveal anything about an account the caller cannot log
// into anyway.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	// The account id rides along so the client can route to verification.
	if !a.EmailVerified {
		return LoginResult{}, domain.ErrEmailNotVerified(a.ID)
	}
	if a.Status != domain.StatusApproved {
		return LoginResult{}, domain.ErrAccountNotApproved()
	}

	token, err := s.signer.SignSessionToken(a.ID, a.Role, s.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.Info().Str("account_id", a.ID).Msg("logged_in")

	return LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.sessionTTL.Seconds()),
		Account:   viewOf(a),
	}, nil
}
