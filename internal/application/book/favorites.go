package book

import (
	"context"
	"strings"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// AddFavorite puts a book on the caller's favorites list. The (account,
// book) pair is unique; adding the same book twice is a conflict.
func (s *Service) AddFavorite(ctx context.Context, caller account.Caller, bookID string) error {
	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		return domain.ErrMissingField("book_id")
	}

	// Favoriting a phantom id should say so, not trip the FK.
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return err
	}

	if err := s.books.AddFavorite(ctx, caller.AccountID, bookID); err != nil {
		return err
	}

	s.log.Info().Str("book_id", bookID).Str("account_id", caller.AccountID).Msg("favorite_added")
	return nil
}

// RemoveFavorite takes a book off the caller's favorites list. Removing a
// book that is not on the list is a no-op.
func (s *Service) RemoveFavorite(ctx context.Context, caller account.Caller, bookID string) error {
	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		return domain.ErrMissingField("book_id")
	}

	if err := s.books.RemoveFavorite(ctx, caller.AccountID, bookID); err != nil {
		return err
	}

	s.log.Info().Str("book_id", bookID).Str("account_id", caller.AccountID).Msg("favorite_removed")
	return nil
}

// ListFavorites returns the caller's favorite books.
func (s *Service) ListFavorites(ctx context.Context, caller account.Caller) ([]domain.Book, error) {
	return s.books.ListFavorites(ctx, caller.AccountID)
}
