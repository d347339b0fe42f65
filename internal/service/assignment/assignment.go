package assignment

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/google/uuid"
)

const dueDateLayout = "2006-01-02"

type assignmentRepo interface {
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	AssignmentByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	ListAssignments(ctx context.Context, status string) ([]models.Assignment, error)
	UpdateAssignment(ctx context.Context, a models.Assignment) (*models.Assignment, error)
	// ChangeStatus moves an assignment from one status to another and
	// fails with ErrInvalidTransition if the row is no longer in `from`.
	ChangeStatus(ctx context.Context, id uuid.UUID, from, to string) error
	// DeleteAssignment removes the assignment together with its bids.
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

type artifactStore interface {
	UploadArtifact(ctx context.Context, assignmentID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	ArtifactURL(ctx context.Context, objectKey string) (string, error)
}

type Service struct {
	log       logger.Log
	repo      assignmentRepo
	artifacts artifactStore
}

func NewService(l logger.Log, repo assignmentRepo, artifacts artifactStore) *Service {
	return &Service{log: l, repo: repo, artifacts: artifacts}
}

// CreateInput carries the raw form fields. Numeric and date fields arrive
// as strings and are parsed here.
type CreateInput struct {
	Title          string
	Description    string
	PriceTag       string
	Pages          string
	ReferenceStyle string
	DueDate        string
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*models.Assignment, error) {
	if in.Title == "" || in.Description == "" || in.PriceTag == "" || in.Pages == "" || in.ReferenceStyle == "" || in.DueDate == "" {
		return nil, fmt.Errorf("%w: all fields are required", app_errors.ErrValidation)
	}

	a := models.Assignment{
		Description: in.Description,
		Status:      models.StatusAvailable,
		UserID:      ownerID,
	}
	if err := setTitle(&a, in.Title); err != nil {
		return nil, err
	}
	if err := setPriceTag(&a, in.PriceTag); err != nil {
		return nil, err
	}
	if err := setPages(&a, in.Pages); err != nil {
		return nil, err
	}
	if err := setReferenceStyle(&a, in.ReferenceStyle); err != nil {
		return nil, err
	}
	if err := setDueDate(&a, in.DueDate); err != nil {
		return nil, err
	}

	if err := s.repo.CreateAssignment(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	return s.repo.AssignmentByID(ctx, id)
}

func (s *Service) List(ctx context.Context, statusFilter string) ([]models.Assignment, error) {
	if statusFilter != "" && !models.ValidAssignmentStatus(statusFilter) {
		return nil, fmt.Errorf("%w: invalid status, must be one of %v", app_errors.ErrValidation, models.AssignmentStatuses)
	}
	return s.repo.ListAssignments(ctx, statusFilter)
}

// UpdateInput carries the optional form fields; nil means "keep the
// current value". Status is not mutable through update.
type UpdateInput struct {
	Title          *string
	Description    *string
	PriceTag       *string
	Pages          *string
	ReferenceStyle *string
	DueDate        *string
}

func (s *Service) Update(ctx context.Context, caller access.Caller, id uuid.UUID, in UpdateInput) (*models.Assignment, error) {
	a, err := s.repo.AssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwnerRole(caller, a.UserID, models.ClientRole); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := setTitle(a, *in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", app_errors.ErrValidation)
		}
		a.Description = *in.Description
	}
	if in.PriceTag != nil {
		if err := setPriceTag(a, *in.PriceTag); err != nil {
			return nil, err
		}
	}
	if in.Pages != nil {
		if err := setPages(a, *in.Pages); err != nil {
			return nil, err
		}
	}
	if in.ReferenceStyle != nil {
		if err := setReferenceStyle(a, *in.ReferenceStyle); err != nil {
			return nil, err
		}
	}
	if in.DueDate != nil {
		if err := setDueDate(a, *in.DueDate); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateAssignment(ctx, *a)
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	a, err := s.repo.AssignmentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.RequireOwnerRole(caller, a.UserID, models.ClientRole); err != nil {
		return err
	}
	return s.repo.DeleteAssignment(ctx, id)
}

// Complete moves an in-progress assignment to completed. Owner only.
func (s *Service) Complete(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	return s.transition(ctx, caller, id, models.StatusInProgress, models.StatusCompleted)
}

// Cancel withdraws an assignment that has not been picked up yet.
func (s *Service) Cancel(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	return s.transition(ctx, caller, id, models.StatusAvailable, models.StatusCanceled)
}

func (s *Service) transition(ctx context.Context, caller access.Caller, id uuid.UUID, from, to string) error {
	a, err := s.repo.AssignmentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.RequireOwnerRole(caller, a.UserID, models.ClientRole); err != nil {
		return err
	}
	if a.Status != from {
		return fmt.Errorf("%w: %s -> %s", app_errors.ErrInvalidTransition, a.Status, to)
	}
	return s.repo.ChangeStatus(ctx, id, from, to)
}

// UploadArtifact stores a delivery file for an in-progress assignment,
// keyed by filename under the assignment prefix. Both the owning client
// and the working writer may upload.
func (s *Service) UploadArtifact(ctx context.Context, caller access.Caller, id uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := access.RequireRole(caller, models.WriterRole, models.ClientRole); err != nil {
		return "", err
	}
	if filename == "" {
		return "", fmt.Errorf("%w: no file attached", app_errors.ErrValidation)
	}
	a, err := s.repo.AssignmentByID(ctx, id)
	if err != nil {
		return "", err
	}
	if a.Status != models.StatusInProgress {
		return "", fmt.Errorf("%w: files can only be uploaded for assignments in progress", app_errors.ErrValidation)
	}
	objectKey, err := s.artifacts.UploadArtifact(ctx, id, filename, reader, size, contentType)
	if err != nil {
		return "", err
	}
	url, err := s.artifacts.ArtifactURL(ctx, objectKey)
	if err != nil {
		s.log.ErrorErr("failed to presign artifact URL", err, "object_key", objectKey)
		return objectKey, nil
	}
	return url, nil
}

func setTitle(a *models.Assignment, title string) error {
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	if len(title) > 100 {
		return fmt.Errorf("%w: title must be 100 characters or less", app_errors.ErrValidation)
	}
	a.Title = title
	return nil
}

func setPriceTag(a *models.Assignment, raw string) error {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid value for price tag", app_errors.ErrValidation)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price tag must be positive", app_errors.ErrValidation)
	}
	a.PriceTag = price
	return nil
}

func setPages(a *models.Assignment, raw string) error {
	pages, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid value for pages", app_errors.ErrValidation)
	}
	if pages <= 0 {
		return fmt.Errorf("%w: number of pages must be positive", app_errors.ErrValidation)
	}
	a.Pages = pages
	return nil
}

func setReferenceStyle(a *models.Assignment, style string) error {
	if !models.ValidReferenceStyle(style) {
		return fmt.Errorf("%w: invalid reference style, choose from %v", app_errors.ErrValidation, models.ReferenceStyles)
	}
	a.ReferenceStyle = style
	return nil
}

func setDueDate(a *models.Assignment, raw string) error {
	due, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return fmt.Errorf("%w: invalid value for due date, expected YYYY-MM-DD", app_errors.ErrValidation)
	}
	a.DueDate = due
	return nil
}
