package domain

import "time"

type Book struct {
	ID            string
	Title         string
	Author        string
	Genre         string
	Description   string
	PublishedYear int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Favorite links an account to a book. The (AccountID, BookID) pair is
// unique: adding the same book twice is a conflict.
type Favorite struct {
	AccountID string
	BookID    string
	AddedAt   time.Time
}
