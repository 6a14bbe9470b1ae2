package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

const accountColumns = `id, username, email, password_hash, role, status, email_verified, otp_code, otp_expires_at, verified_at, created_at`

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *AccountRepo) scanAccountRow(row *sql.Row) (accountRow, error) {
	var ar accountRow
	err := row.Scan(
		&ar.ID,
		&ar.Username,
		&ar.Email,
		&ar.PasswordHash,
		&ar.Role,
		&ar.Status,
		&ar.EmailVerified,
		&ar.OTPCode,
		&ar.OTPExpiresAt,
		&ar.VerifiedAt,
		&ar.CreatedAt,
	)
	return ar, err
}

// mapUniqueViolation turns a unique-constraint violation into the typed
// conflict error for the column it guards. Returns nil for anything else.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrEmailAlreadyExists()
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domain.ErrUsernameAlreadyExists()
	case strings.Contains(pgErr.ConstraintName, "favorites"):
		return domain.ErrAlreadyFavorite()
	default:
		return domain.ErrInternal(err)
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ---------- account.Repo ----------

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + accountColumns + `
FROM accounts
WHERE email = $1
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Account{}, domain.ErrMissingField("username")
	}

	const q = `
SELECT ` + accountColumns + `
FROM accounts
WHERE username = $1
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, q, username))
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
LIMIT 1;
`
	ar, err := r.scanAccountRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if a.Username == "" {
		return domain.Account{}, domain.ErrMissingField("username")
	}
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if a.PasswordHash == "" {
		return domain.Account{}, domain.ErrMissingField("password_hash")
	}
	if a.Role == "" {
		a.Role = string(domain.RoleUser)
	}
	if a.Status == "" {
		a.Status = domain.StatusPending
	}

	ar := fromDomainAccount(a)

	const q = `
INSERT INTO accounts (id, username, email, password_hash, role, status, email_verified, otp_code, otp_expires_at, verified_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING ` + accountColumns + `;
`
	row := r.db.QueryRowContext(ctx, q,
		ar.ID, ar.Username, ar.Email, ar.PasswordHash, ar.Role, ar.Status,
		ar.EmailVerified, ar.OTPCode, ar.OTPExpiresAt, ar.VerifiedAt,
	)
	out, err := r.scanAccountRow(row)
	if err != nil {
		if conflict := mapUniqueViolation(err); conflict != nil {
			return domain.Account{}, conflict
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(out), nil
}

func (r *AccountRepo) Update(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	ar := fromDomainAccount(a)

	const q = `
UPDATE accounts
SET username = $2,
    email = $3,
    password_hash = $4,
    role = $5,
    status = $6,
    email_verified = $7,
    otp_code = $8,
    otp_expires_at = $9,
    verified_at = $10
WHERE id = $1
RETURNING ` + accountColumns + `;
`
	row := r.db.QueryRowContext(ctx, q,
		ar.ID, ar.Username, ar.Email, ar.PasswordHash, ar.Role, ar.Status,
		ar.EmailVerified, ar.OTPCode, ar.OTPExpiresAt, ar.VerifiedAt,
	)
	out, err := r.scanAccountRow(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrAccountNotFound()
		}
		if conflict := mapUniqueViolation(err); conflict != nil {
			return domain.Account{}, conflict
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(out), nil
}

func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM accounts WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}

func (r *AccountRepo) List(ctx context.Context, f account.ListFilter) ([]domain.Account, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if f.Verified != nil {
		args = append(args, *f.Verified)
		where = append(where, "email_verified = $"+strconv.Itoa(len(args)))
	}

	q := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit)
	q += " ORDER BY created_at ASC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, f.Offset)
	q += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var ar accountRow
		if err := rows.Scan(
			&ar.ID,
			&ar.Username,
			&ar.Email,
			&ar.PasswordHash,
			&ar.Role,
			&ar.Status,
			&ar.EmailVerified,
			&ar.OTPCode,
			&ar.OTPExpiresAt,
			&ar.VerifiedAt,
			&ar.CreatedAt,
		); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, toDomainAccount(ar))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
