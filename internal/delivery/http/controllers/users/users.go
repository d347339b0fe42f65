package users

import (
	"context"
	"net/http"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/middleware"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/user"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserService interface {
	List(ctx context.Context, caller access.Caller) ([]models.User, error)
	ByID(ctx context.Context, caller access.Caller, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, caller access.Caller, id uuid.UUID, patch user.Patch) (*models.User, error)
	Delete(ctx context.Context, caller access.Caller, id uuid.UUID) error
}

type UserHandler struct {
	log     logger.Log
	service UserService
}

func NewUserHandler(l logger.Log, s UserService) *UserHandler {
	return &UserHandler{log: l, service: s}
}

func (h *UserHandler) List(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	users, err := h.service.List(c.Request.Context(), caller)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) ByID(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user_id"})
		return
	}
	u, err := h.service.ByID(c.Request.Context(), caller, id)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type patchRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (h *UserHandler) Patch(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user_id"})
		return
	}

	var input patchRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), caller, id, user.Patch{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user_id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
