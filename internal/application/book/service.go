package book

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service owns the book catalog and per-account favorites.
type Service struct {
	books Repo
	cache Cache

	ttlDetails time.Duration
	ttlList    time.Duration

	now func() time.Time
	log zerolog.Logger
}

type Config struct {
	CacheDetailsTTL time.Duration
	CacheListTTL    time.Duration
}

func NewService(books Repo, cache Cache, cfg Config) *Service {
	ttlDetails := cfg.CacheDetailsTTL
	if ttlDetails <= 0 {
		ttlDetails = 5 * time.Minute
	}
	ttlList := cfg.CacheListTTL
	if ttlList <= 0 {
		ttlList = 15 * time.Second
	}
	return &Service{
		books:      books,
		cache:      cache,
		ttlDetails: ttlDetails,
		ttlList:    ttlList,
		now:        time.Now,
		log:        zerolog.Nop(),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) WithLogger(log zerolog.Logger) *Service {
	s.log = log
	return s
}

// catalog writes require manager or admin
func requireCatalogWriter(c account.Caller) error {
	if !domain.IsValidRole(c.Role) {
		return domain.ErrForbidden()
	}
	if domain.RoleRank(c.Role) < domain.RoleRank(string(domain.RoleManager)) {
		return domain.ErrInsufficientRole(string(domain.RoleManager))
	}
	return nil
}

func cacheKeyBook(id string) string {
	return "book:" + id
}

// Deterministic key over the filter params. Only the first page (offset 0)
// is cached; the short list TTL stands in for write invalidation.
func cacheKeyBookList(f ListFilter) string {
	raw := fmt.Sprintf("genre=%s|author=%s|limit=%d", f.Genre, f.Author, f.Limit)
	sum := sha256.Sum256([]byte(raw))
	return "books:list:" + hex.EncodeToString(sum[:])
}
