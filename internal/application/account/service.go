package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Service is the account lifecycle manager. It owns every transition of an
// account from registration through verification and approval to login.
type Service struct {
	accounts Repo
	hasher   PasswordHasher
	signer   TokenSigner
	notifier Notifier

	sessionTTL time.Duration
	otpTTL     time.Duration

	now func() time.Time
	log zerolog.Logger
}

type Config struct {
	SessionTTL time.Duration
	OTPTTL     time.Duration
}

func NewService(
	accounts Repo,
	hasher PasswordHasher,
	signer TokenSigner,
	notifier Notifier,
	cfg Config,
) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	otpTTL := cfg.OTPTTL
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		signer:   signer,
		notifier: notifier,

		sessionTTL: sessionTTL,
		otpTTL:     otpTTL,

		now: time.Now,
		log: zerolog.Nop(),
	}
}

// WithClock overrides the wall clock (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) WithLogger(log zerolog.Logger) *Service {
	s.log = log
	return s
}

// Caller carries the already-authenticated identity for privileged
// operations. It is threaded in explicitly so privilege checks stay pure
// functions of their input rather than reading ambient middleware state.
type Caller struct {
	AccountID string
	Role      string
}

// View is the outward shape of an account. Password hash and OTP fields
// never leave the service on any read path.
type View struct {
	ID            string
	Username      string
	Email         string
	Role          string
	Status        string
	EmailVerified bool
	CreatedAt     time.Time
}

func viewOf(a domain.Account) View {
	return View{
		ID:            a.ID,
		Username:      a.Username,
		Email:         a.Email,
		Role:          a.Role,
		Status:        a.Status,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
	}
}

type RegisterResult struct {
	ID    string
	Email string
}

type LoginResult struct {
	Token     string
	TokenType string
	ExpiresIn int64 // seconds
	Account   View
}

// requireAtLeast enforces the role hierarchy admin >= manager >= user for
// a privileged operation.
func requireAtLeast(c Caller, minRole domain.Role) error {
	if !domain.IsValidRole(c.Role) {
		return domain.ErrForbidden()
	}
	if domain.RoleRank(c.Role) < domain.RoleRank(string(minRole)) {
		return domain.ErrInsufficientRole(string(minRole))
	}
	return nil
}

// newOTP returns a uniformly random 6-digit numeric code.
func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLen {
		return domain.ErrInvalidField("username", fmt.Sprintf("must be at least %d characters", minUsernameLen))
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ErrInvalidField("email", "invalid email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return domain.ErrInvalidField("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
