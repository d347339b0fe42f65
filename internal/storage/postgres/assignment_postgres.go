package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssignmentPostgres struct {
	db *pgxpool.Pool
}

func NewAssignmentPostgres(db *pgxpool.Pool) *AssignmentPostgres {
	return &AssignmentPostgres{db: db}
}

func (r *AssignmentPostgres) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	query := `
		INSERT INTO assignments (
			id, title, description, price_tag, pages, reference_style,
			due_date, status, user_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)
	`
	_, err := r.db.Exec(
		ctx,
		query,
		a.ID,
		a.Title,
		a.Description,
		a.PriceTag,
		a.Pages,
		a.ReferenceStyle,
		a.DueDate,
		a.Status,
		a.UserID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AssignmentPostgres) AssignmentByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	const query = `
		SELECT id, title, description, price_tag, pages, reference_style,
		       due_date, status, user_id, created_at, updated_at
		  FROM assignments
		 WHERE id = $1
	`
	a := &models.Assignment{}
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.PriceTag,
		&a.Pages,
		&a.ReferenceStyle,
		&a.DueDate,
		&a.Status,
		&a.UserID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrAssignmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AssignmentPostgres) ListAssignments(ctx context.Context, status string) ([]models.Assignment, error) {
	query := `
		SELECT id, title, description, price_tag, pages, reference_style,
		       due_date, status, user_id, created_at, updated_at
		  FROM assignments
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Description,
			&a.PriceTag,
			&a.Pages,
			&a.ReferenceStyle,
			&a.DueDate,
			&a.Status,
			&a.UserID,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *AssignmentPostgres) UpdateAssignment(ctx context.Context, a models.Assignment) (*models.Assignment, error) {
	query := `
		UPDATE assignments
		   SET title = $2, description = $3, price_tag = $4, pages = $5,
		       reference_style = $6, due_date = $7, updated_at = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, a.ID, a.Title, a.Description, a.PriceTag, a.Pages, a.ReferenceStyle, a.DueDate)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, app_errors.ErrAssignmentNotFound
	}
	return &a, nil
}

// ChangeStatus is a conditional update: the row must still be in `from`,
// which closes the race between concurrent transitions.
func (r *AssignmentPostgres) ChangeStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	const query = `
		UPDATE assignments
		   SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND status = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrInvalidTransition
	}
	return nil
}

// DeleteAssignment removes the assignment and its bids in one
// transaction. Cascade is explicit here rather than relying on FK rules.
func (r *AssignmentPostgres) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM bids WHERE assignment_id = $1`, id); err != nil {
		return err
	}

	var cmdTag pgconn.CommandTag
	cmdTag, err = tx.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		err = app_errors.ErrAssignmentNotFound
		return err
	}

	return tx.Commit(ctx)
}
