package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BidPostgres struct {
	db *pgxpool.Pool
}

func NewBidPostgres(db *pgxpool.Pool) *BidPostgres {
	return &BidPostgres{db: db}
}

const bidViewSelect = `
	SELECT b.id, b.user_id, u.username, b.assignment_id, a.title,
	       b.amount, b.status, b.created_at
	  FROM bids b
	  JOIN users u ON u.id = b.user_id
	  JOIN assignments a ON a.id = b.assignment_id
`

func (r *BidPostgres) CreateBid(ctx context.Context, bid *models.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO bids (id, user_id, assignment_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, bid.ID, bid.UserID, bid.AssignmentID, bid.Amount, bid.Status, bid.CreatedAt)
	return err
}

func (r *BidPostgres) BidByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	query := `SELECT id, user_id, assignment_id, amount, status, created_at FROM bids WHERE id = $1`
	var b models.Bid
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.UserID, &b.AssignmentID, &b.Amount, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrBidNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BidPostgres) ListBids(ctx context.Context) ([]models.BidView, error) {
	return r.listViews(ctx, bidViewSelect+` ORDER BY b.created_at`)
}

func (r *BidPostgres) ListBidsByWriter(ctx context.Context, writerID uuid.UUID) ([]models.BidView, error) {
	return r.listViews(ctx, bidViewSelect+` WHERE b.user_id = $1 ORDER BY b.created_at`, writerID)
}

func (r *BidPostgres) ListBidsByClient(ctx context.Context, clientID uuid.UUID) ([]models.BidView, error) {
	return r.listViews(ctx, bidViewSelect+` WHERE a.user_id = $1 ORDER BY b.created_at`, clientID)
}

func (r *BidPostgres) ListBidsByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]models.BidView, error) {
	return r.listViews(ctx, bidViewSelect+` WHERE b.assignment_id = $1 ORDER BY b.created_at`, assignmentID)
}

// AcceptBid awards the bid and settles everything it implies in one
// transaction: the bid becomes accepted, pending siblings become
// rejected, and the assignment leaves the available state.
func (r *BidPostgres) AcceptBid(ctx context.Context, bidID, assignmentID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	assignmentQuery := `
		UPDATE assignments
		   SET status = $2, updated_at = NOW()
		 WHERE id = $1 AND status = $3
	`
	cmdTag, err := tx.Exec(ctx, assignmentQuery, assignmentID, models.StatusInProgress, models.StatusAvailable)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		err = app_errors.ErrInvalidTransition
		return err
	}

	acceptQuery := `UPDATE bids SET status = $2 WHERE id = $1 AND status = $3`
	cmdTag, err = tx.Exec(ctx, acceptQuery, bidID, models.BidAccepted, models.BidPending)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		err = app_errors.ErrBidNotPending
		return err
	}

	rejectQuery := `
		UPDATE bids SET status = $2
		 WHERE assignment_id = $1 AND id <> $3 AND status = $4
	`
	if _, err = tx.Exec(ctx, rejectQuery, assignmentID, models.BidRejected, bidID, models.BidPending); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *BidPostgres) RejectBid(ctx context.Context, bidID uuid.UUID) error {
	query := `UPDATE bids SET status = $2 WHERE id = $1 AND status = $3`
	cmdTag, err := r.db.Exec(ctx, query, bidID, models.BidRejected, models.BidPending)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrBidNotPending
	}
	return nil
}

func (r *BidPostgres) listViews(ctx context.Context, query string, args ...any) ([]models.BidView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.BidView
	for rows.Next() {
		var v models.BidView
		err := rows.Scan(&v.ID, &v.UserID, &v.User, &v.AssignmentID, &v.AssignmentTitle, &v.Amount, &v.Status, &v.CreatedAt)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
