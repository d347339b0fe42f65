package user

import (
	"context"
	"fmt"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	log  logger.Log
	repo userRepo
}

func NewUserService(l logger.Log, repo userRepo) *UserService {
	return &UserService{log: l, repo: repo}
}

func (s *UserService) List(ctx context.Context, caller access.Caller) ([]models.User, error) {
	if err := access.RequireRole(caller, models.AdminRole); err != nil {
		return nil, err
	}
	return s.repo.ListUsers(ctx)
}

func (s *UserService) ByID(ctx context.Context, caller access.Caller, id uuid.UUID) (*models.User, error) {
	if err := access.RequireRole(caller, models.AdminRole); err != nil {
		return nil, err
	}
	return s.repo.UserByID(ctx, id)
}

// Patch carries the optional profile fields; nil means "leave unchanged".
type Patch struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

// Update applies a partial profile patch. Callers may edit their own
// record; admins may edit anyone.
func (s *UserService) Update(ctx context.Context, caller access.Caller, id uuid.UUID, patch Patch) (*models.User, error) {
	if err := access.RequireSelfOrAdmin(caller, id); err != nil {
		return nil, err
	}

	user, err := s.repo.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		if *patch.Username == "" || len(*patch.Username) > 50 {
			return nil, fmt.Errorf("%w: username must be 1-50 characters", app_errors.ErrValidation)
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		if *patch.Email == "" || len(*patch.Email) > 120 {
			return nil, fmt.Errorf("%w: email must be 1-120 characters", app_errors.ErrValidation)
		}
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return nil, fmt.Errorf("%w: invalid role, must be one of %v", app_errors.ErrValidation, models.Roles)
		}
		user.Role = *patch.Role
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", app_errors.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	return s.repo.UpdateUser(ctx, *user)
}

func (s *UserService) Delete(ctx context.Context, caller access.Caller, id uuid.UUID) error {
	if err := access.RequireRole(caller, models.AdminRole); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}
