package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/book"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

const bookColumns = `id, title, author, genre, description, published_year, created_at, updated_at`

type BookRepo struct {
	db *sql.DB
}

func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

func scanBook(sc interface{ Scan(...any) error }) (domain.Book, error) {
	var b domain.Book
	err := sc.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.Description,
		&b.PublishedYear,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// ---------- book.Repo ----------

func (r *BookRepo) Create(ctx context.Context, b domain.Book) (domain.Book, error) {
	const q = `
INSERT INTO books (id, title, author, genre, description, published_year, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + bookColumns + `;
`
	out, err := scanBook(r.db.QueryRowContext(ctx, q,
		b.ID, b.Title, b.Author, b.Genre, b.Description, b.PublishedYear, b.CreatedAt, b.UpdatedAt,
	))
	if err != nil {
		return domain.Book{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id string) (domain.Book, error) {
	const q = `
SELECT ` + bookColumns + `
FROM books
WHERE id = $1
LIMIT 1;
`
	b, err := scanBook(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Book{}, domain.ErrBookNotFound()
		}
		return domain.Book{}, domain.ErrDBUnavailable(err)
	}
	return b, nil
}

func (r *BookRepo) List(ctx context.Context, f book.ListFilter) ([]domain.Book, error) {
	var (
		where []string
		args  []any
	)
	if f.Genre != "" {
		args = append(args, f.Genre)
		where = append(where, "genre = $"+strconv.Itoa(len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		where = append(where, "author = $"+strconv.Itoa(len(args)))
	}

	q := `SELECT ` + bookColumns + ` FROM books`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit)
	q += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, f.Offset)
	q += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	return r.queryBooks(ctx, q, args...)
}

func (r *BookRepo) Update(ctx context.Context, b domain.Book) (domain.Book, error) {
	const q = `
UPDATE books
SET title = $2,
    author = $3,
    genre = $4,
    description = $5,
    published_year = $6,
    updated_at = $7
WHERE id = $1
RETURNING ` + bookColumns + `;
`
	out, err := scanBook(r.db.QueryRowContext(ctx, q,
		b.ID, b.Title, b.Author, b.Genre, b.Description, b.PublishedYear, b.UpdatedAt,
	))
	if err != nil {
		if isNoRows(err) {
			return domain.Book{}, domain.ErrBookNotFound()
		}
		return domain.Book{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BookRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM books WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrBookNotFound()
	}
	return nil
}

// ---------- favorites ----------

func (r *BookRepo) AddFavorite(ctx context.Context, accountID, bookID string) error {
	const q = `
INSERT INTO favorites (account_id, book_id, added_at)
VALUES ($1, $2, NOW());
`
	if _, err := r.db.ExecContext(ctx, q, accountID, bookID); err != nil {
		if conflict := mapUniqueViolation(err); conflict != nil {
			return conflict
		}
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *BookRepo) RemoveFavorite(ctx context.Context, accountID, bookID string) error {
	const q = `DELETE FROM favorites WHERE account_id = $1 AND book_id = $2;`
	// Zero rows affected is fine; removal is idempotent.
	if _, err := r.db.ExecContext(ctx, q, accountID, bookID); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *BookRepo) ListFavorites(ctx context.Context, accountID string) ([]domain.Book, error) {
	const q = `
SELECT b.id, b.title, b.author, b.genre, b.description, b.published_year, b.created_at, b.updated_at
FROM favorites f
JOIN books b ON b.id = f.book_id
WHERE f.account_id = $1
ORDER BY f.added_at DESC;
`
	return r.queryBooks(ctx, q, accountID)
}

func (r *BookRepo) queryBooks(ctx context.Context, q string, args ...any) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
