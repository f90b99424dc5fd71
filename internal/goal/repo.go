package goal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const goalColumns = `id, user_id, title, description, target_amount, current_amount, deadline, category, status, is_active, created_at, updated_at`

func scanGoal(row pgx.Row) (Goal, error) {
	var g Goal
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.Deadline,
		&g.Category,
		&g.Status,
		&g.IsActive,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

// List returns the user's goals, soft-deleted ones excluded, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Goal, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+goalColumns+`
		 FROM savings_goals
		 WHERE user_id = $1::uuid AND is_active
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Goal, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+`
		 FROM savings_goals
		 WHERE id = $1::uuid AND user_id = $2::uuid AND is_active`,
		id, userID,
	)
	return scanGoal(row)
}

func (r *Repository) Create(ctx context.Context, g Goal) (Goal, error) {
	row := r.Pool.QueryRow(ctx,
		`INSERT INTO savings_goals (user_id, title, description, target_amount, current_amount, deadline, category, status)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+goalColumns,
		g.UserID, g.Title, g.Description, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Category, g.Status,
	)
	return scanGoal(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Goal, error) {
	row := r.Pool.QueryRow(ctx,
		`UPDATE savings_goals SET
			title         = COALESCE($3, title),
			description   = COALESCE($4, description),
			target_amount = COALESCE($5, target_amount),
			deadline      = COALESCE($6, deadline),
			category      = COALESCE($7, category),
			status        = COALESCE($8, status),
			updated_at    = now()
		 WHERE id = $1::uuid AND user_id = $2::uuid AND is_active
		 RETURNING `+goalColumns,
		id, userID,
		p.Title, p.Description, p.TargetAmount, p.Deadline, p.Category, p.Status,
	)
	return scanGoal(row)
}

// AddSavings increments current_amount and flips the status to completed in
// the same statement, so two concurrent deposits cannot lose the transition.
func (r *Repository) AddSavings(ctx context.Context, userID, id string, amount float64) (Goal, error) {
	row := r.Pool.QueryRow(ctx,
		`UPDATE savings_goals SET
			current_amount = current_amount + $3,
			status = CASE
				WHEN current_amount + $3 >= target_amount THEN 'completed'
				ELSE status
			END,
			updated_at = now()
		 WHERE id = $1::uuid AND user_id = $2::uuid AND is_active
		 RETURNING `+goalColumns,
		id, userID, amount,
	)
	return scanGoal(row)
}

func (r *Repository) SoftDelete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx,
		`UPDATE savings_goals SET is_active = FALSE, updated_at = now()
		 WHERE id = $1::uuid AND user_id = $2::uuid AND is_active`,
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
