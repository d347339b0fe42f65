package auth

import (
	"context"
	"testing"
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byName map[string]*models.User
	byID   map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byName: make(map[string]*models.User),
		byID:   make(map[uuid.UUID]*models.User),
	}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if _, ok := r.byName[user.Username]; ok {
		return nil, app_errors.ErrUserExists
	}
	user.ID = uuid.New()
	u := user
	r.byName[u.Username] = &u
	r.byID[u.ID] = &u
	return &u, nil
}

func (r *fakeUserRepo) UserByName(ctx context.Context, username string) (*models.User, error) {
	u, ok := r.byName[username]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]*models.RefreshToken)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	rt := &models.RefreshToken{
		UserID:      userID,
		HashedToken: token.Raw,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt.Time,
	}
	r.tokens[userID] = rt
	return rt, nil
}

func (r *fakeTokenRepo) ByPrimaryKey(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	rt, ok := r.tokens[userID]
	if !ok || rt.HashedToken != token.Raw {
		return nil, app_errors.ErrTokenNotFound
	}
	return rt, nil
}

func (r *fakeTokenRepo) DeleteUserTokens(ctx context.Context, userID uuid.UUID) error {
	delete(r.tokens, userID)
	return nil
}

func newTestService() (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	manager := NewJWTManager("test-secret", "sharpquill", 24*time.Hour, 720*time.Hour)
	return NewAuthService(logger.New("local"), manager, users, tokens), users, tokens
}

func TestRegister(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		in       RegisterInput
		wantErr  error
		wantRole string
	}{
		{
			name:     "defaults_to_writer",
			in:       RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret"},
			wantRole: models.WriterRole,
		},
		{
			name:     "explicit_client",
			in:       RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret", Role: models.ClientRole},
			wantRole: models.ClientRole,
		},
		{
			name:    "missing_email",
			in:      RegisterInput{Username: "carol", Password: "secret"},
			wantErr: app_errors.ErrValidation,
		},
		{
			name:    "invalid_role",
			in:      RegisterInput{Username: "dave", Email: "dave@example.com", Password: "secret", Role: "superadmin"},
			wantErr: app_errors.ErrValidation,
		},
		{
			name:    "duplicate_username",
			in:      RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret"},
			wantErr: app_errors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := s.Register(ctx, tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantRole, u.Role)
			require.NotEqual(t, tt.in.Password, u.Password, "raw password must never be stored")
		})
	}
}

func TestLoginAfterRegister(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	registered, err := s.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret",
		Role:     models.ClientRole,
	})
	require.NoError(t, err)

	user, access, refresh, err := s.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	// The access token must embed the correct identity and role.
	userID, role, err := s.AccessClaims(ctx, access)
	require.NoError(t, err)
	require.Equal(t, registered.ID, userID)
	require.Equal(t, models.ClientRole, role)

	// And carry the 24h expiry.
	claims, err := s.jwtManager.AccessClaims(access)
	require.NoError(t, err)
	ttl := time.Until(claims.ExpiresAt.Time)
	require.InDelta(t, 24*time.Hour, ttl, float64(time.Minute))
}

func TestLoginFailures(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)

	_, _, _, err = s.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, app_errors.ErrInvalidCredentials)

	_, _, _, err = s.Login(ctx, "nobody", "secret")
	require.ErrorIs(t, err, app_errors.ErrInvalidCredentials, "missing user must look like a bad password")
}

func TestRefreshTokensRotates(t *testing.T) {
	s, _, tokens := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	_, _, refresh, err := s.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	pair, err := s.RefreshTokens(ctx, refresh)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken.Raw)

	// The old refresh token is gone after rotation.
	_, err = s.RefreshTokens(ctx, refresh)
	require.Error(t, err)

	require.Len(t, tokens.tokens, 1)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	_, access, _, err := s.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = s.RefreshTokens(ctx, access)
	require.ErrorIs(t, err, app_errors.ErrTokenNotFound)
}

func TestLogoutRevokesRefresh(t *testing.T) {
	s, users, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	_, _, refresh, err := s.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	u, err := users.UserByName(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx, u.ID))

	_, err = s.RefreshTokens(ctx, refresh)
	require.ErrorIs(t, err, app_errors.ErrTokenNotFound)
}
