package domain

type Role string

const (
	// User can browse the catalog and manage their own favorites
	RoleUser Role = "user"
	// Manager can manage the book catalog and approve/reject pending accounts
	RoleManager Role = "manager"
	// Admin holds every manager privilege plus manager account creation
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleManager) || r == string(RoleAdmin)
}

// RoleRank: bigger => higher privilege
func RoleRank(r string) int {
	switch r {
	case string(RoleUser):
		return 1
	case string(RoleManager):
		return 2
	case string(RoleAdmin):
		return 3
	default:
		return 0
	}
}
