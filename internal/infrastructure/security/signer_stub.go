package security

import (
	"strconv"
	"strings"
	"time"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// StubSigner is a transparent token scheme for tests and local tooling.
type StubSigner struct{}

func NewStubSigner() *StubSigner { return &StubSigner{} }

// Format: "stub.<accountID>.<role>.<expUnix>"
func (s *StubSigner) SignSessionToken(accountID string, role string, ttl time.Duration) (string, error) {
	exp := time.Now().Add(ttl).Unix()
	return "stub." + accountID + "." + role + "." + strconv.FormatInt(exp, 10), nil
}

func (s *StubSigner) VerifySessionToken(token string) (account.TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 || parts[0] != "stub" {
		return account.TokenClaims{}, domain.ErrTokenInvalid()
	}

	accountID := parts[1]
	role := parts[2]

	expUnix, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return account.TokenClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Unix(expUnix, 0)
	if time.Now().After(exp) {
		return account.TokenClaims{}, domain.ErrTokenExpired()
	}

	return account.TokenClaims{
		AccountID: accountID,
		Role:      role,
		Exp:       exp,
	}, nil
}
