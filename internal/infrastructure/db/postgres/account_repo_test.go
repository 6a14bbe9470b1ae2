package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

var accountCols = []string{
	"id", "username", "email", "password_hash", "role", "status",
	"email_verified", "otp_code", "otp_expires_at", "verified_at", "created_at",
}

func pendingRow(id string) *sqlmock.Rows {
	return sqlmock.NewRows(accountCols).AddRow(
		id, "alice", "alice@example.com", "hash", "user", "pending",
		false, "123456", time.Now().Add(10*time.Minute), nil, time.Now(),
	)
}

func TestAccountRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	t.Run("success_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email =").
			WithArgs("alice@example.com").
			WillReturnRows(pendingRow("acc_1"))

		a, err := repo.GetByEmail(context.Background(), " Alice@Example.com ")
		assert.NoError(t, err)
		assert.Equal(t, "acc_1", a.ID)
		assert.Equal(t, "123456", a.OTP)
		assert.False(t, a.EmailVerified)
		assert.True(t, a.VerifiedAt.IsZero())
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email =").
			WithArgs("none@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "none@example.com")
		assert.True(t, domain.Is(err, "account_not_found"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Create_UniqueViolations(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)
	a := domain.Account{
		ID: "acc_1", Username: "alice", Email: "alice@example.com",
		PasswordHash: "hash", Role: "user", Status: "pending",
	}

	t.Run("email_taken", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO accounts").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

		_, err := repo.Create(context.Background(), a)
		assert.True(t, domain.Is(err, "email_already_exists"))
	})

	t.Run("username_taken", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO accounts").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"})

		_, err := repo.Create(context.Background(), a)
		assert.True(t, domain.Is(err, "username_already_exists"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	mock.ExpectQuery("UPDATE accounts").WillReturnError(sql.ErrNoRows)

	_, err = repo.Update(context.Background(), domain.Account{ID: "ghost"})
	assert.True(t, domain.Is(err, "account_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	t.Run("removes_row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM accounts WHERE id =").
			WithArgs("acc_1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "acc_1"))
	})

	t.Run("missing_row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM accounts WHERE id =").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "ghost")
		assert.True(t, domain.Is(err, "account_not_found"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_List_Filters(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)
	verified := true

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE status = (.+) AND email_verified =").
		WithArgs("pending", true, 50, 0).
		WillReturnRows(pendingRow("acc_1"))

	out, err := repo.List(context.Background(), account.ListFilter{
		Status: "pending", Verified: &verified, Limit: 50, Offset: 0,
	})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "acc_1", out[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
