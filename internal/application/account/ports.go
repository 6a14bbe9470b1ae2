package account

import (
	"context"
	"time"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

/*
Repo
----
Persistence port for accounts (the credential store).
Only describes WHAT the lifecycle needs, not HOW it's stored.
Uniqueness of email and username is enforced by the store; Create and
Update surface violations as conflict errors.
*/
type Repo interface {
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	Update(ctx context.Context, a domain.Account) (domain.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]domain.Account, error)
}

// ListFilter selects accounts by approval/verification state.
// Verified is a tri-state: nil means "any".
type ListFilter struct {
	Status   string
	Verified *bool
	Limit    int
	Offset   int
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	AccountID string
	Role      string
	Exp       time.Time
}

type TokenSigner interface {
	SignSessionToken(accountID string, role string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (TokenClaims, error)
}

/*
Notifier
--------
Outbound email delivery collaborator. In production this publishes mail
events to RabbitMQ; a separate mail service does the actual sending.
Every call is best-effort from the lifecycle's perspective except where
an operation states otherwise (ResendOTP).
*/
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
	SendApprovalNotice(ctx context.Context, email, username string) error
	SendRejectionNotice(ctx context.Context, email, username, reason string) error
}
