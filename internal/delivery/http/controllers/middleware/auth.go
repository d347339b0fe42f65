package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CallerIDCtx   = "caller_id"
	CallerRoleCtx = "caller_role"
)

type AuthService interface {
	ParseToken(ctx context.Context, token string) (*jwt.Token, error)
	IsAccessToken(ctx context.Context, token *jwt.Token) bool
	AccessClaims(ctx context.Context, token string) (userID uuid.UUID, role string, err error)
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthProvider struct {
	log     logger.Log
	service AuthService
}

func NewAuthProvider(log logger.Log, s AuthService) *AuthProvider {
	return &AuthProvider{log: log, service: s}
}

// AuthMiddleware validates the bearer token and stashes the caller
// identity in the request context. The role comes from the user record,
// not the claims, so demotions take effect before token expiry.
func (p *AuthProvider) AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = parts[1]
	}
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	parsedToken, err := p.service.ParseToken(c.Request.Context(), token)
	if err != nil {
		p.log.Info("failed to parse token", logger.Err(err))
		if errors.Is(err, app_errors.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": app_errors.ErrTokenExpired.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cant parse token"})
		return
	}
	if !p.service.IsAccessToken(c.Request.Context(), parsedToken) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not access token"})
		return
	}

	userID, _, err := p.service.AccessClaims(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	user, err := p.service.User(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(CallerIDCtx, user.ID)
	c.Set(CallerRoleCtx, user.Role)
	c.Next()
}

// Caller rebuilds the authenticated identity set by AuthMiddleware.
func Caller(c *gin.Context) (access.Caller, bool) {
	idVal, ok := c.Get(CallerIDCtx)
	if !ok {
		return access.Caller{}, false
	}
	roleVal, ok := c.Get(CallerRoleCtx)
	if !ok {
		return access.Caller{}, false
	}
	id, ok := idVal.(uuid.UUID)
	if !ok {
		return access.Caller{}, false
	}
	role, ok := roleVal.(string)
	if !ok {
		return access.Caller{}, false
	}
	return access.Caller{UserID: id, Role: role}, true
}
