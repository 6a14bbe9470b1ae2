package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/book"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

type BookRepo struct {
	mu        sync.RWMutex
	byID      map[string]domain.Book
	favorites map[string]map[string]bool // accountID -> set of bookIDs
}

func NewBookRepo() *BookRepo {
	return &BookRepo{
		byID:      make(map[string]domain.Book),
		favorites: make(map[string]map[string]bool),
	}
}

func (r *BookRepo) Create(ctx context.Context, b domain.Book) (domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		return domain.Book{}, domain.ErrMissingField("id")
	}
	r.byID[b.ID] = b
	return b, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id string) (domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound()
	}
	return b, nil
}

func (r *BookRepo) List(ctx context.Context, f book.ListFilter) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []domain.Book
	for _, b := range r.byID {
		if f.Genre != "" && b.Genre != f.Genre {
			continue
		}
		if f.Author != "" && b.Author != f.Author {
			continue
		}
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if f.Offset >= len(all) {
		return nil, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, nil
}

func (r *BookRepo) Update(ctx context.Context, b domain.Book) (domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[b.ID]; !ok {
		return domain.Book{}, domain.ErrBookNotFound()
	}
	r.byID[b.ID] = b
	return b, nil
}

func (r *BookRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrBookNotFound()
	}
	delete(r.byID, id)
	for _, set := range r.favorites {
		delete(set, id)
	}
	return nil
}

func (r *BookRepo) AddFavorite(ctx context.Context, accountID, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.favorites[accountID]
	if !ok {
		set = make(map[string]bool)
		r.favorites[accountID] = set
	}
	if set[bookID] {
		return domain.ErrAlreadyFavorite()
	}
	set[bookID] = true
	return nil
}

func (r *BookRepo) RemoveFavorite(ctx context.Context, accountID, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.favorites[accountID], bookID)
	return nil
}

func (r *BookRepo) ListFavorites(ctx context.Context, accountID string) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Book
	for id := range r.favorites[accountID] {
		if b, ok := r.byID[id]; ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
