package postgres

import (
	"database/sql"
	"time"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

type accountRow struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string
	Role          string
	Status        string
	EmailVerified bool
	OTPCode       sql.NullString
	OTPExpiresAt  sql.NullTime
	VerifiedAt    sql.NullTime
	CreatedAt     time.Time
}

func toDomainAccount(ar accountRow) domain.Account {
	a := domain.Account{
		ID:            ar.ID,
		Username:      ar.Username,
		Email:         ar.Email,
		PasswordHash:  ar.PasswordHash,
		Role:          ar.Role,
		Status:        ar.Status,
		EmailVerified: ar.EmailVerified,
		CreatedAt:     ar.CreatedAt,
	}
	if ar.OTPCode.Valid {
		a.OTP = ar.OTPCode.String
	}
	if ar.OTPExpiresAt.Valid {
		a.OTPExpiry = ar.OTPExpiresAt.Time
	}
	if ar.VerifiedAt.Valid {
		a.VerifiedAt = ar.VerifiedAt.Time
	}
	return a
}

func fromDomainAccount(a domain.Account) accountRow {
	ar := accountRow{
		ID:            a.ID,
		Username:      a.Username,
		Email:         a.Email,
		PasswordHash:  a.PasswordHash,
		Role:          a.Role,
		Status:        a.Status,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
	}
	if a.OTP != "" {
		ar.OTPCode = sql.NullString{String: a.OTP, Valid: true}
	}
	if !a.OTPExpiry.IsZero() {
		ar.OTPExpiresAt = sql.NullTime{Time: a.OTPExpiry, Valid: true}
	}
	if !a.VerifiedAt.IsZero() {
		ar.VerifiedAt = sql.NullTime{Time: a.VerifiedAt, Valid: true}
	}
	return ar
}
