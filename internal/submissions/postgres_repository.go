package submissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores submissions in the contact_submissions table.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("submissions: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// Record inserts a row. Re-recording the same ID is a no-op.
func (r *PostgresRepository) Record(ctx context.Context, s *Submission) error {
	if err := s.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO contact_submissions (id, status, name, email, company, message, http_status, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query,
		s.ID,
		s.Status,
		s.Name,
		s.Email,
		s.Company,
		s.Message,
		s.HTTPStatus,
		s.Error,
		s.DurationMS,
		s.CreatedAt,
	); err != nil {
		return fmt.Errorf("submissions: insert failed: %w", err)
	}
	return nil
}

const selectColumns = `id, status, name, email, company, message, http_status, error, duration_ms, created_at`

// GetByID fetches one submission.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	// The id column is a uuid; anything else can never match a row.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSubmissionNotFound
	}
	query := `SELECT ` + selectColumns + ` FROM contact_submissions WHERE id = $1`
	s, err := scanSubmission(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("submissions: select failed: %w", err)
	}
	return s, nil
}

// List returns submissions newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Submission, error) {
	if filter.Status != "" {
		if err := validateStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + selectColumns + `
		FROM contact_submissions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, filter.Status, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("submissions: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("submissions: scan failed: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("submissions: list failed: %w", err)
	}
	return out, nil
}

func scanSubmission(row pgx.Row) (*Submission, error) {
	var s Submission
	if err := row.Scan(
		&s.ID,
		&s.Status,
		&s.Name,
		&s.Email,
		&s.Company,
		&s.Message,
		&s.HTTPStatus,
		&s.Error,
		&s.DurationMS,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
