package book

import (
	"context"
	"time"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

type Repo interface {
	Create(ctx context.Context, b domain.Book) (domain.Book, error)
	GetByID(ctx context.Context, id string) (domain.Book, error)
	Update(ctx context.Context, b domain.Book) (domain.Book, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]domain.Book, error)

	AddFavorite(ctx context.Context, accountID, bookID string) error
	RemoveFavorite(ctx context.Context, accountID, bookID string) error
	ListFavorites(ctx context.Context, accountID string) ([]domain.Book, error)
}

type ListFilter struct {
	Genre  string
	Author string
	Limit  int
	Offset int
}

// Cache is a best-effort read cache for the public catalog endpoints.
// A nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
