package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/middleware"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	authservice "github.com/JohnMutemi/sharpQuill-Back-end/internal/service/auth"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, in authservice.RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (user *models.User, accessToken, refreshToken string, err error)
	RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthHandler struct {
	log     logger.Log
	service AuthService
}

func NewAuthHandler(l logger.Log, s AuthService) *AuthHandler {
	return &AuthHandler{log: l, service: s}
}

func (h *AuthHandler) Register(c *gin.Context) {
	in := authservice.RegisterInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Email:    c.PostForm("email"),
		Role:     c.PostForm("role"),
	}

	if _, err := h.service.Register(c.Request.Context(), in); err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

type loginResponse struct {
	Message      string    `json:"message"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), username, password)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Message:      fmt.Sprintf("Welcome %s", user.Username),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input refreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tokenPair, err := h.service.RefreshTokens(c.Request.Context(), input.RefreshToken)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokenPair.AccessToken.Raw,
		"refresh_token": tokenPair.RefreshToken.Raw,
	})
}

// Session returns the authenticated user's own record.
func (h *AuthHandler) Session(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := h.service.User(c.Request.Context(), caller.UserID)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.service.Logout(c.Request.Context(), caller.UserID); err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
