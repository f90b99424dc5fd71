package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const userColumns = `id, name, email, password_hash, avatar, avatar_path, phone, address, preferences, is_active, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Avatar,
		&u.AvatarPath,
		&u.Phone,
		&u.Address,
		&u.Preferences,
		&u.IsActive,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *Repository) Create(ctx context.Context, name, email, passwordHash string) (User, error) {
	row := r.Pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		strings.TrimSpace(name), normalizeEmail(email), passwordHash,
	)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicateEmail
		}
		return User{}, err
	}
	return u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = $1`,
		normalizeEmail(email),
	)
	return scanUser(row)
}

func (r *Repository) FindByID(ctx context.Context, id string) (User, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1::uuid`,
		id,
	)
	return scanUser(row)
}

// UpdateProfile changes only the supplied fields; nil patch members keep the
// stored value.
func (r *Repository) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (User, error) {
	row := r.Pool.QueryRow(ctx,
		`UPDATE users SET
			name        = COALESCE($2, name),
			phone       = COALESCE($3, phone),
			address     = COALESCE($4, address),
			avatar      = COALESCE($5, avatar),
			avatar_path = COALESCE($6, avatar_path),
			updated_at  = now()
		 WHERE id = $1::uuid
		 RETURNING `+userColumns,
		id, patch.Name, patch.Phone, patch.Address, patch.Avatar, patch.AvatarPath,
	)
	return scanUser(row)
}

func (r *Repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ct, err := r.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1::uuid`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE users SET last_login = now() WHERE id = $1::uuid`,
		id,
	)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
