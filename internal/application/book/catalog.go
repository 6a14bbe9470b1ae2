package book

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

// Create adds a book to the catalog. Manager or above.
func (s *Service) Create(ctx context.Context, caller account.Caller, b domain.Book) (domain.Book, error) {
	if err := requireCatalogWriter(caller); err != nil {
		return domain.Book{}, err
	}

	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Genre = strings.TrimSpace(b.Genre)
	if b.Title == "" {
		return domain.Book{}, domain.ErrMissingField("title")
	}
	if b.Author == "" {
		return domain.Book{}, domain.ErrMissingField("author")
	}
	if b.Genre == "" {
		return domain.Book{}, domain.ErrMissingField("genre")
	}

	b.ID = uuid.NewString()
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt

	created, err := s.books.Create(ctx, b)
	if err != nil {
		return domain.Book{}, err
	}

	s.log.Info().Str("book_id", created.ID).Str("actor_id", caller.AccountID).Msg("book_created")
	return created, nil
}

// Get returns a single book. Public.
func (s *Service) Get(ctx context.Context, id string) (domain.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Book{}, domain.ErrMissingField("id")
	}

	key := cacheKeyBook(id)
	if s.cache != nil {
		var cached domain.Book
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			return cached, nil
		}
	}

	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, b, s.ttlDetails); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return b, nil
}

// List returns catalog entries matching the filter. Public. Only the first
// page goes through the cache.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Book, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	cacheable := s.cache != nil && f.Offset == 0
	key := cacheKeyBookList(f)

	if cacheable {
		var cached []domain.Book
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			return cached, nil
		}
	}

	books, err := s.books.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, books, s.ttlList); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return books, nil
}

type BookUpdate struct {
	Title         *string
	Author        *string
	Genre         *string
	Description   *string
	PublishedYear *int
}

// Update applies a partial update to a book. Manager or above. Supplied
// title/author/genre must not be blanked out.
func (s *Service) Update(ctx context.Context, caller account.Caller, id string, upd BookUpdate) (domain.Book, error) {
	if err := requireCatalogWriter(caller); err != nil {
		return domain.Book{}, err
	}

	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}

	if upd.Title != nil {
		v := strings.TrimSpace(*upd.Title)
		if v == "" {
			return domain.Book{}, domain.ErrInvalidField("title", "cannot be empty")
		}
		b.Title = v
	}
	if upd.Author != nil {
		v := strings.TrimSpace(*upd.Author)
		if v == "" {
			return domain.Book{}, domain.ErrInvalidField("author", "cannot be empty")
		}
		b.Author = v
	}
	if upd.Genre != nil {
		v := strings.TrimSpace(*upd.Genre)
		if v == "" {
			return domain.Book{}, domain.ErrInvalidField("genre", "cannot be empty")
		}
		b.Genre = v
	}
	if upd.Description != nil {
		b.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.PublishedYear != nil {
		b.PublishedYear = *upd.PublishedYear
	}
	b.UpdatedAt = s.now()

	updated, err := s.books.Update(ctx, b)
	if err != nil {
		return domain.Book{}, err
	}

	s.invalidate(ctx, updated.ID)
	s.log.Info().Str("book_id", updated.ID).Str("actor_id", caller.AccountID).Msg("book_updated")
	return updated, nil
}

// Delete removes a book from the catalog. Manager or above.
func (s *Service) Delete(ctx context.Context, caller account.Caller, id string) error {
	if err := requireCatalogWriter(caller); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.log.Info().Str("book_id", id).Str("actor_id", caller.AccountID).Msg("book_deleted")
	return nil
}

// invalidate drops the details entry after a write; list entries age out
// on their own short TTL.
func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyBook(id)); err != nil {
		s.log.Warn().Err(err).Str("book_id", id).Msg("cache invalidation failed")
	}
}
