package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByName(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	ByPrimaryKey(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	userRepo   userRepo
	tokenRepo  tokenRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, uRepo userRepo, tRepo tokenRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		userRepo:   uRepo,
		tokenRepo:  tRepo,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates a user with a bcrypt-hashed password. Role defaults to
// writer when omitted; duplicate usernames surface as ErrUserExists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username, password, and email are required", app_errors.ErrValidation)
	}
	if len(in.Username) > 50 {
		return nil, fmt.Errorf("%w: username must be 50 characters or less", app_errors.ErrValidation)
	}
	if len(in.Email) > 120 {
		return nil, fmt.Errorf("%w: email must be 120 characters or less", app_errors.ErrValidation)
	}
	if in.Role == "" {
		in.Role = models.WriterRole
	}
	if !models.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: invalid role, must be one of %v", app_errors.ErrValidation, models.Roles)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
	}
	return s.userRepo.CreateUser(ctx, user)
}

// Login verifies credentials and issues a fresh token pair, rotating the
// stored refresh token. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (user *models.User, accessToken, refreshToken string, err error) {
	user, err = s.userRepo.UserByName(ctx, username)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, "", "", app_errors.ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !checkPasswordHash(password, user.Password) {
		return nil, "", "", app_errors.ErrInvalidCredentials
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, "", "", err
	}

	if err = s.tokenRepo.DeleteUserTokens(ctx, user.ID); err != nil {
		return nil, "", "", err
	}
	if _, err = s.tokenRepo.Create(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return nil, "", "", err
	}

	return user, tokenPair.AccessToken.Raw, tokenPair.RefreshToken.Raw, nil
}

func (s *AuthService) RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error) {
	curToken, err := s.jwtManager.Parse(token)
	if err != nil {
		return nil, err
	}
	if !s.jwtManager.TokenType(curToken, RefreshTokenType) {
		return nil, app_errors.ErrTokenNotFound
	}
	userIDStr, err := curToken.Claims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	tokenRecord, err := s.tokenRepo.ByPrimaryKey(ctx, userID, curToken)
	if err != nil {
		return nil, err
	}
	if tokenRecord.ExpiresAt.Before(time.Now()) {
		return nil, app_errors.ErrTokenExpired
	}
	user, err := s.userRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.DeleteUserTokens(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.tokenRepo.Create(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return nil, err
	}
	return tokenPair, nil
}

// Logout revokes the caller's refresh tokens. Access tokens stay valid
// until expiry.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokenRepo.DeleteUserTokens(ctx, userID)
}

func (s *AuthService) ParseToken(ctx context.Context, token string) (*jwt.Token, error) {
	return s.jwtManager.Parse(token)
}

func (s *AuthService) IsAccessToken(ctx context.Context, token *jwt.Token) bool {
	return s.jwtManager.TokenType(token, AccessTokenType)
}

func (s *AuthService) AccessClaims(ctx context.Context, token string) (userID uuid.UUID, role string, err error) {
	claims, err := s.jwtManager.AccessClaims(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, claims.Role, nil
}

func (s *AuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.UserByID(ctx, id)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
