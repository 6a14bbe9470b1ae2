package book

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

type fakeBookRepo struct {
	mu sync.Mutex

	byID      map[string]domain.Book
	favorites map[string]map[string]bool // accountID -> bookID set

	createErr error
	listErr   error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		byID:      map[string]domain.Book{},
		favorites: map[string]map[string]bool{},
	}
}

func (f *fakeBookRepo) Create(ctx context.Context, b domain.Book) (domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.Book{}, f.createErr
	}
	f.byID[b.ID] = b
	return b, nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id string) (domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound()
	}
	return b, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b domain.Book) (domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[b.ID]; !ok {
		return domain.Book{}, domain.ErrBookNotFound()
	}
	f.byID[b.ID] = b
	return b, nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrBookNotFound()
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeBookRepo) List(ctx context.Context, filter ListFilter) ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Book
	for _, b := range f.byID {
		if filter.Genre != "" && b.Genre != filter.Genre {
			continue
		}
		if filter.Author != "" && b.Author != filter.Author {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookRepo) AddFavorite(ctx context.Context, accountID, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.favorites[accountID]
	if !ok {
		set = map[string]bool{}
		f.favorites[accountID] = set
	}
	if set[bookID] {
		return domain.ErrAlreadyFavorite()
	}
	set[bookID] = true
	return nil
}

func (f *fakeBookRepo) RemoveFavorite(ctx context.Context, accountID, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favorites[accountID], bookID)
	return nil
}

func (f *fakeBookRepo) ListFavorites(ctx context.Context, accountID string) ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Book
	for id := range f.favorites[accountID] {
		if b, ok := f.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu    sync.Mutex
	gets  int
	hits  int
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.store[key] = raw
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
	}
	return nil
}

func newSvcForTest(t *testing.T) (*Service, *fakeBookRepo, *fakeCache) {
	t.Helper()
	repo := newFakeBookRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache, Config{}).WithLogger(zerolog.Nop())
	return svc, repo, cache
}

var (
	managerCaller = account.Caller{AccountID: "mgr-1", Role: string(domain.RoleManager)}
	userCaller    = account.Caller{AccountID: "user-1", Role: string(domain.RoleUser)}
)

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}

func createBook(t *testing.T, svc *Service, title string) domain.Book {
	t.Helper()
	b, err := svc.Create(context.Background(), managerCaller, domain.Book{
		Title:  title,
		Author: "Author",
		Genre:  "Fiction",
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}
	return b
}
