package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const txColumns = `id, user_id, type, amount, currency, category, date, payment_method, notes, status, attachment, created_at, updated_at`

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Amount,
		&t.Currency,
		&t.Category,
		&t.Date,
		&t.PaymentMethod,
		&t.Notes,
		&t.Status,
		&t.Attachment,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func buildFilter(userID string, f Filter) (string, []any) {
	where := []string{"user_id = $1::uuid"}
	args := []any{userID}

	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, "%"+f.Category+"%")
		where = append(where, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	return strings.Join(where, " AND "), args
}

// List returns one page of the user's transactions, newest created first,
// plus the unpaginated total for the same filter.
func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Transaction, int, error) {
	where, args := buildFilter(userID, f)

	var total int
	if err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	rows, err := r.Pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			txColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Transaction, 0, f.Limit)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Transaction, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	)
	return scanTransaction(row)
}

func (r *Repository) Create(ctx context.Context, t Transaction) (Transaction, error) {
	row := r.Pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, currency, category, date, payment_method, notes, status, attachment)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+txColumns,
		t.UserID, t.Type, t.Amount, t.Currency, t.Category, t.Date, t.PaymentMethod, t.Notes, t.Status, t.Attachment,
	)
	return scanTransaction(row)
}

// Update changes only the supplied fields in a single statement.
func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Transaction, error) {
	row := r.Pool.QueryRow(ctx,
		`UPDATE transactions SET
			type           = COALESCE($3, type),
			amount         = COALESCE($4, amount),
			currency       = COALESCE($5, currency),
			category       = COALESCE($6, category),
			date           = COALESCE($7, date),
			payment_method = COALESCE($8, payment_method),
			notes          = COALESCE($9, notes),
			status         = COALESCE($10, status),
			attachment     = COALESCE($11, attachment),
			updated_at     = now()
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+txColumns,
		id, userID,
		p.Type, p.Amount, p.Currency, p.Category, p.Date, p.PaymentMethod, p.Notes, p.Status, p.Attachment,
	)
	return scanTransaction(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats sums completed income and expenses and counts pending and total
// transactions in one pass.
func (r *Repository) Stats(ctx context.Context, userID string) (Stats, error) {
	var s Stats
	err := r.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income'  AND status = 'completed' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' AND status = 'completed' THEN amount ELSE 0 END), 0),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*)
		FROM transactions
		WHERE user_id = $1::uuid
	`, userID).Scan(&s.TotalIncome, &s.TotalExpenses, &s.PendingTransactions, &s.TotalTransactions)
	if err != nil {
		return Stats{}, err
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	return s, nil
}
