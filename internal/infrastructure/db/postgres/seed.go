package postgres

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
}

// SeedAccounts inserts the bootstrap admin and manager so a fresh
// deployment has someone who can approve registrations. Safe to call on
// every start: duplicates are skipped.
func SeedAccounts(ctx context.Context, repo SeederRepo, hasher SeederHasher) {
	type seedAccount struct {
		Username string
		Email    string
		Role     string
		Pass     string
	}

	seeds := []seedAccount{
		{Username: "admin", Email: "admin@example.com", Role: "admin", Pass: "AdminPassword123!"},
		{Username: "manager", Email: "manager@example.com", Role: "manager", Pass: "ManagerPassword123!"},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Printf("[seed] hash failed (%s): %v", s.Email, err)
			continue
		}

		a := domain.Account{
			ID:            uuid.NewString(),
			Username:      s.Username,
			Email:         s.Email,
			PasswordHash:  hash,
			Role:          s.Role,
			Status:        domain.StatusApproved,
			EmailVerified: true,
		}

		_, err = repo.Create(ctx, a)
		if err != nil {
			// ignore duplicates (restart safe)
			continue
		}
	}

	log.Println("[seed] postgres accounts seeded")
}
