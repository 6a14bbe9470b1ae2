package domain

import "time"

// Account statuses. A rejected account is deleted outright, so "rejected"
// never appears as a stored status.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type Account struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string
	Role          string
	Status        string
	EmailVerified bool

	// OTP and OTPExpiry are set only while email verification is pending.
	// Both are cleared the moment the account is verified.
	OTP       string
	OTPExpiry time.Time

	VerifiedAt time.Time
	CreatedAt  time.Time
}

// HasOTP reports whether a verification code is currently on record.
func (a Account) HasOTP() bool {
	return a.OTP != "" && !a.OTPExpiry.IsZero()
}

// CanLogin reports whether the account has cleared both gates:
// email verified AND approved by a manager/admin.
func (a Account) CanLogin() bool {
	return a.EmailVerified && a.Status == StatusApproved
}
