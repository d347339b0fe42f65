package bid

import (
	"context"
	"fmt"
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/google/uuid"
)

type bidRepo interface {
	CreateBid(ctx context.Context, bid *models.Bid) error
	BidByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	ListBids(ctx context.Context) ([]models.BidView, error)
	ListBidsByWriter(ctx context.Context, writerID uuid.UUID) ([]models.BidView, error)
	ListBidsByClient(ctx context.Context, clientID uuid.UUID) ([]models.BidView, error)
	ListBidsByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]models.BidView, error)
	// AcceptBid marks the bid accepted, rejects its pending siblings and
	// moves the assignment to in_progress, all in one transaction.
	AcceptBid(ctx context.Context, bidID, assignmentID uuid.UUID) error
	RejectBid(ctx context.Context, bidID uuid.UUID) error
}

type assignmentRepo interface {
	AssignmentByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
}

type Service struct {
	log         logger.Log
	bids        bidRepo
	assignments assignmentRepo
}

func NewService(l logger.Log, bids bidRepo, assignments assignmentRepo) *Service {
	return &Service{log: l, bids: bids, assignments: assignments}
}

// Place records a writer's bid on an available assignment.
func (s *Service) Place(ctx context.Context, caller access.Caller, assignmentID uuid.UUID, amount float64) (*models.Bid, error) {
	if err := access.RequireRole(caller, models.WriterRole); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: bid amount must be positive", app_errors.ErrValidation)
	}

	// A missing assignment and an unavailable one are the same failure
	// from the bidder's point of view.
	a, err := s.assignments.AssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, app_errors.ErrAssignmentUnavailable
	}
	if a.Status != models.StatusAvailable {
		return nil, app_errors.ErrAssignmentUnavailable
	}

	bid := models.Bid{
		UserID:       caller.UserID,
		AssignmentID: assignmentID,
		Amount:       amount,
		Status:       models.BidPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.bids.CreateBid(ctx, &bid); err != nil {
		return nil, err
	}
	return &bid, nil
}

// List returns bids scoped to the caller: writers see their own bids,
// clients see bids on their assignments, admins see everything.
func (s *Service) List(ctx context.Context, caller access.Caller) ([]models.BidView, error) {
	switch caller.Role {
	case models.AdminRole:
		return s.bids.ListBids(ctx)
	case models.WriterRole:
		return s.bids.ListBidsByWriter(ctx, caller.UserID)
	case models.ClientRole:
		return s.bids.ListBidsByClient(ctx, caller.UserID)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", app_errors.ErrForbidden, caller.Role)
	}
}

// ListForAssignment returns all bids on one assignment for its owning
// client or an admin.
func (s *Service) ListForAssignment(ctx context.Context, caller access.Caller, assignmentID uuid.UUID) ([]models.BidView, error) {
	a, err := s.assignments.AssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		if err := access.RequireOwnerRole(caller, a.UserID, models.ClientRole); err != nil {
			return nil, err
		}
	}
	return s.bids.ListBidsByAssignment(ctx, assignmentID)
}

// Accept awards the assignment to the bidding writer. The owning client
// accepts one pending bid on a still-available assignment; siblings are
// rejected and the assignment moves to in_progress.
func (s *Service) Accept(ctx context.Context, caller access.Caller, bidID uuid.UUID) (*models.Bid, error) {
	b, err := s.bids.BidByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	a, err := s.assignments.AssignmentByID(ctx, b.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwnerRole(caller, a.UserID, models.ClientRole); err != nil {
		return nil, err
	}
	if b.Status != models.BidPending {
		return nil, app_errors.ErrBidNotPending
	}
	if a.Status != models.StatusAvailable {
		return nil, fmt.Errorf("%w: %s -> %s", app_errors.ErrInvalidTransition, a.Status, models.StatusInProgress)
	}
	if err := s.bids.AcceptBid(ctx, bidID, b.AssignmentID); err != nil {
		return nil, err
	}
	b.Status = models.BidAccepted
	return b, nil
}

// Reject declines a pending bid without touching the assignment.
func (s *Service) Reject(ctx context.Context, caller access.Caller, bidID uuid.UUID) (*models.Bid, error) {
	b, err := s.bids.BidByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	a, err := s.assignments.AssignmentByID(ctx, b.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwnerRole(caller, a.UserID, models.ClientRole); err != nil {
		return nil, err
	}
	if b.Status != models.BidPending {
		return nil, app_errors.ErrBidNotPending
	}
	if err := s.bids.RejectBid(ctx, bidID); err != nil {
		return nil, err
	}
	b.Status = models.BidRejected
	return b, nil
}
