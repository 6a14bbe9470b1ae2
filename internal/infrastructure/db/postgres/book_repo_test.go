package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/book"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

var bookCols = []string{
	"id", "title", "author", "genre", "description", "published_year", "created_at", "updated_at",
}

func duneRow() *sqlmock.Rows {
	return sqlmock.NewRows(bookCols).AddRow(
		"bk_1", "Dune", "Frank Herbert", "Fiction", "Desert planet", 1965, time.Now(), time.Now(),
	)
}

func TestBookRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)
	now := time.Now().UTC()
	b := domain.Book{
		ID: "bk_1", Title: "Dune", Author: "Frank Herbert", Genre: "Fiction",
		Description: "Desert planet", PublishedYear: 1965, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO books").
		WithArgs(b.ID, b.Title, b.Author, b.Genre, b.Description, b.PublishedYear, b.CreatedAt, b.UpdatedAt).
		WillReturnRows(duneRow())

	out, err := repo.Create(context.Background(), b)
	assert.NoError(t, err)
	assert.Equal(t, "bk_1", out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	t.Run("success_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id =").
			WithArgs("bk_1").
			WillReturnRows(duneRow())

		b, err := repo.GetByID(context.Background(), "bk_1")
		assert.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, 1965, b.PublishedYear)
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books WHERE id =").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "ghost")
		assert.True(t, domain.Is(err, "book_not_found"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_List_GenreFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM books WHERE genre =").
		WithArgs("Fiction", 20, 0).
		WillReturnRows(duneRow())

	out, err := repo.List(context.Background(), book.ListFilter{Genre: "Fiction", Limit: 20})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_Delete_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectExec("DELETE FROM books WHERE id =").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "ghost")
	assert.True(t, domain.Is(err, "book_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_AddFavorite_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectExec("INSERT INTO favorites").
		WithArgs("acc_1", "bk_1").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "favorites_pkey"})

	err = repo.AddFavorite(context.Background(), "acc_1", "bk_1")
	assert.True(t, domain.Is(err, "already_favorite"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_RemoveFavorite_AbsentIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectExec("DELETE FROM favorites").
		WithArgs("acc_1", "bk_1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.RemoveFavorite(context.Background(), "acc_1", "bk_1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_ListFavorites(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM favorites f").
		WithArgs("acc_1").
		WillReturnRows(duneRow())

	out, err := repo.ListFavorites(context.Background(), "acc_1")
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Dune", out[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
