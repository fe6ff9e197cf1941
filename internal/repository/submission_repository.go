package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/early-access-service/internal/domain"
)

// SubmissionRepository encapsulates early-access persistence.
type SubmissionRepository interface {
	Insert(ctx context.Context, submissions []domain.Submission) ([]domain.Submission, error)
	CountSince(ctx context.Context, sinceDays int) (int64, error)
}

// querier is the subset of pgxpool.Pool the repository needs.
type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type submissionRepository struct {
	pool querier
}

// NewSubmissionRepository instantiates repository.
func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{pool: pool}
}

// Insert stores the batch in one transaction: either every row is committed
// or none are.
func (r *submissionRepository) Insert(ctx context.Context, submissions []domain.Submission) ([]domain.Submission, error) {
	const query = `
        INSERT INTO early_access (name, email, phone)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	inserted := make([]domain.Submission, 0, len(submissions))
	for _, sub := range submissions {
		if err := tx.QueryRow(ctx, query, sub.Name, sub.Email, sub.Phone).
			Scan(&sub.ID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		inserted = append(inserted, sub)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (r *submissionRepository) CountSince(ctx context.Context, sinceDays int) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM early_access
        WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')`

	var count int64
	if err := r.pool.QueryRow(ctx, query, sinceDays).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
