package assignment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeAssignmentRepo struct {
	assignments map[uuid.UUID]*models.Assignment
	order       []uuid.UUID
	deletedBids []uuid.UUID
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[uuid.UUID]*models.Assignment)}
}

func (r *fakeAssignmentRepo) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	r.assignments[a.ID] = &cp
	r.order = append(r.order, a.ID)
	return nil
}

func (r *fakeAssignmentRepo) AssignmentByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, app_errors.ErrAssignmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) ListAssignments(ctx context.Context, status string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, id := range r.order {
		a := r.assignments[id]
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) UpdateAssignment(ctx context.Context, a models.Assignment) (*models.Assignment, error) {
	if _, ok := r.assignments[a.ID]; !ok {
		return nil, app_errors.ErrAssignmentNotFound
	}
	cp := a
	r.assignments[a.ID] = &cp
	return &a, nil
}

func (r *fakeAssignmentRepo) ChangeStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	a, ok := r.assignments[id]
	if !ok || a.Status != from {
		return app_errors.ErrInvalidTransition
	}
	a.Status = to
	return nil
}

func (r *fakeAssignmentRepo) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.assignments[id]; !ok {
		return app_errors.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	r.deletedBids = append(r.deletedBids, id)
	return nil
}

type fakeArtifactStore struct {
	uploads map[string][]byte
}

func newFakeArtifactStore() *fakeArtifactStore {
	return &fakeArtifactStore{uploads: make(map[string][]byte)}
}

func (s *fakeArtifactStore) UploadArtifact(ctx context.Context, assignmentID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("assignments/%s/%s", assignmentID, filename)
	s.uploads[key] = data
	return key, nil
}

func (s *fakeArtifactStore) ArtifactURL(ctx context.Context, objectKey string) (string, error) {
	return "https://storage.local/" + objectKey, nil
}

func newTestService() (*Service, *fakeAssignmentRepo, *fakeArtifactStore) {
	repo := newFakeAssignmentRepo()
	artifacts := newFakeArtifactStore()
	return NewService(logger.New("local"), repo, artifacts), repo, artifacts
}

func validInput() CreateInput {
	return CreateInput{
		Title:          "T",
		Description:    "D",
		PriceTag:       "20.5",
		Pages:          "3",
		ReferenceStyle: "APA",
		DueDate:        "2025-01-01",
	}
}

func TestCreate(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name   string
		modify func(*CreateInput)
		errMsg string
	}{
		{name: "valid", modify: func(in *CreateInput) {}},
		{
			name:   "missing_title",
			modify: func(in *CreateInput) { in.Title = "" },
			errMsg: "all fields are required",
		},
		{
			name:   "negative_price",
			modify: func(in *CreateInput) { in.PriceTag = "-5" },
			errMsg: "price tag must be positive",
		},
		{
			name:   "non_numeric_price",
			modify: func(in *CreateInput) { in.PriceTag = "cheap" },
			errMsg: "invalid value for price tag",
		},
		{
			name:   "zero_pages",
			modify: func(in *CreateInput) { in.Pages = "0" },
			errMsg: "number of pages must be positive",
		},
		{
			name:   "bad_reference_style",
			modify: func(in *CreateInput) { in.ReferenceStyle = "IEEE" },
			errMsg: "invalid reference style",
		},
		{
			name:   "bad_due_date",
			modify: func(in *CreateInput) { in.DueDate = "01/01/2025" },
			errMsg: "invalid value for due date",
		},
		{
			name:   "title_too_long",
			modify: func(in *CreateInput) { in.Title = string(bytes.Repeat([]byte("x"), 101)) },
			errMsg: "100 characters or less",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestService()
			in := validInput()
			tt.modify(&in)

			a, err := s.Create(context.Background(), ownerID, in)
			if tt.errMsg != "" {
				require.ErrorIs(t, err, app_errors.ErrValidation)
				require.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, models.StatusAvailable, a.Status)
			require.Equal(t, ownerID, a.UserID)
		})
	}
}

func TestCreateThenFetchRoundTrip(t *testing.T) {
	s, _, _ := newTestService()
	ownerID := uuid.New()

	created, err := s.Create(context.Background(), ownerID, validInput())
	require.NoError(t, err)

	fetched, err := s.ByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "T", fetched.Title)
	require.Equal(t, "D", fetched.Description)
	require.Equal(t, 20.5, fetched.PriceTag)
	require.Equal(t, 3, fetched.Pages)
	require.Equal(t, "APA", fetched.ReferenceStyle)
	require.Equal(t, "2025-01-01", fetched.DueDate.Format("2006-01-02"))
}

func TestUpdateOwnershipGate(t *testing.T) {
	s, _, _ := newTestService()
	ownerID := uuid.New()
	owner := access.Caller{UserID: ownerID, Role: models.ClientRole}

	created, err := s.Create(context.Background(), ownerID, validInput())
	require.NoError(t, err)

	newTitle := "Updated"
	tests := []struct {
		name    string
		caller  access.Caller
		wantErr error
	}{
		{"owner_ok", owner, nil},
		{"other_client", access.Caller{UserID: uuid.New(), Role: models.ClientRole}, app_errors.ErrForbidden},
		{"writer", access.Caller{UserID: ownerID, Role: models.WriterRole}, app_errors.ErrForbidden},
		{"admin_is_not_owner", access.Caller{UserID: uuid.New(), Role: models.AdminRole}, app_errors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Update(context.Background(), tt.caller, created.ID, UpdateInput{Title: &newTitle})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUpdatePartialFields(t *testing.T) {
	s, _, _ := newTestService()
	ownerID := uuid.New()
	owner := access.Caller{UserID: ownerID, Role: models.ClientRole}

	created, err := s.Create(context.Background(), ownerID, validInput())
	require.NoError(t, err)

	pages := "7"
	updated, err := s.Update(context.Background(), owner, created.ID, UpdateInput{Pages: &pages})
	require.NoError(t, err)
	require.Equal(t, 7, updated.Pages)
	require.Equal(t, "T", updated.Title, "unspecified fields keep their value")
	require.Equal(t, 20.5, updated.PriceTag)

	badStyle := "IEEE"
	_, err = s.Update(context.Background(), owner, created.ID, UpdateInput{ReferenceStyle: &badStyle})
	require.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestDeleteOwnershipGate(t *testing.T) {
	s, repo, _ := newTestService()
	ownerID := uuid.New()

	created, err := s.Create(context.Background(), ownerID, validInput())
	require.NoError(t, err)

	err = s.Delete(context.Background(), access.Caller{UserID: uuid.New(), Role: models.ClientRole}, created.ID)
	require.ErrorIs(t, err, app_errors.ErrForbidden)

	err = s.Delete(context.Background(), access.Caller{UserID: ownerID, Role: models.ClientRole}, created.ID)
	require.NoError(t, err)
	require.Contains(t, repo.deletedBids, created.ID, "delete must cascade to bids")

	_, err = s.ByID(context.Background(), created.ID)
	require.ErrorIs(t, err, app_errors.ErrAssignmentNotFound)
}

func TestTransitions(t *testing.T) {
	ownerID := uuid.New()
	owner := access.Caller{UserID: ownerID, Role: models.ClientRole}
	ctx := context.Background()

	t.Run("cancel_available", func(t *testing.T) {
		s, repo, _ := newTestService()
		a, err := s.Create(ctx, ownerID, validInput())
		require.NoError(t, err)

		require.NoError(t, s.Cancel(ctx, owner, a.ID))
		require.Equal(t, models.StatusCanceled, repo.assignments[a.ID].Status)
	})

	t.Run("complete_requires_in_progress", func(t *testing.T) {
		s, repo, _ := newTestService()
		a, err := s.Create(ctx, ownerID, validInput())
		require.NoError(t, err)

		err = s.Complete(ctx, owner, a.ID)
		require.ErrorIs(t, err, app_errors.ErrInvalidTransition)

		repo.assignments[a.ID].Status = models.StatusInProgress
		require.NoError(t, s.Complete(ctx, owner, a.ID))
		require.Equal(t, models.StatusCompleted, repo.assignments[a.ID].Status)
	})

	t.Run("cancel_after_completion_rejected", func(t *testing.T) {
		s, repo, _ := newTestService()
		a, err := s.Create(ctx, ownerID, validInput())
		require.NoError(t, err)

		repo.assignments[a.ID].Status = models.StatusCompleted
		err = s.Cancel(ctx, owner, a.ID)
		require.ErrorIs(t, err, app_errors.ErrInvalidTransition)
	})
}

func TestListStatusFilter(t *testing.T) {
	s, repo, _ := newTestService()
	ownerID := uuid.New()
	ctx := context.Background()

	first, err := s.Create(ctx, ownerID, validInput())
	require.NoError(t, err)
	second, err := s.Create(ctx, ownerID, validInput())
	require.NoError(t, err)
	repo.assignments[second.ID].Status = models.StatusInProgress

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	available, err := s.List(ctx, models.StatusAvailable)
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, first.ID, available[0].ID)

	_, err = s.List(ctx, "bogus")
	require.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestUploadArtifact(t *testing.T) {
	ownerID := uuid.New()
	writer := access.Caller{UserID: uuid.New(), Role: models.WriterRole}
	ctx := context.Background()

	t.Run("requires_in_progress", func(t *testing.T) {
		s, _, _ := newTestService()
		a, err := s.Create(ctx, ownerID, validInput())
		require.NoError(t, err)

		_, err = s.UploadArtifact(ctx, writer, a.ID, "draft.docx", bytes.NewReader([]byte("x")), 1, "")
		require.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("stores_by_filename", func(t *testing.T) {
		s, repo, artifacts := newTestService()
		a, err := s.Create(ctx, ownerID, validInput())
		require.NoError(t, err)
		repo.assignments[a.ID].Status = models.StatusInProgress

		url, err := s.UploadArtifact(ctx, writer, a.ID, "draft.docx", bytes.NewReader([]byte("content")), 7, "")
		require.NoError(t, err)
		require.Contains(t, url, "draft.docx")

		key := fmt.Sprintf("assignments/%s/draft.docx", a.ID)
		require.Equal(t, []byte("content"), artifacts.uploads[key])
	})

	t.Run("rejects_admin", func(t *testing.T) {
		s, repo, _ := newTestService()
		a, err := s.Create(ctx, ownerID, validInput())
		require.NoError(t, err)
		repo.assignments[a.ID].Status = models.StatusInProgress

		admin := access.Caller{UserID: uuid.New(), Role: models.AdminRole}
		_, err = s.UploadArtifact(ctx, admin, a.ID, "f.txt", bytes.NewReader(nil), 0, "")
		require.ErrorIs(t, err, app_errors.ErrForbidden)
	})

	t.Run("missing_filename", func(t *testing.T) {
		s, _, _ := newTestService()
		a, err := s.Create(ctx, ownerID, validInput())
		require.NoError(t, err)

		_, err = s.UploadArtifact(ctx, writer, a.ID, "", bytes.NewReader(nil), 0, "")
		require.ErrorIs(t, err, app_errors.ErrValidation)
	})
}
