package services

import (
	"context"
	"testing"
	"time"

	"wedsite/internal/config"
	"wedsite/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	args := m.Called(ctx, userID, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:          "unit-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestTokenService_GenerateTokens(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testAuthConfig())

	user := models.User{ID: uuid.New(), Role: models.RoleOrganizer}

	mockRepo.On("SaveRefreshToken", ctx, user.ID.String(), mock.AnythingOfType("string"), 7*24*time.Hour).
		Return(nil).Once()

	pair, err := service.GenerateTokens(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := service.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, models.RoleOrganizer, claims.Role)

	mockRepo.AssertExpectations(t)
}

func TestTokenService_RefreshTokens_RotatesToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testAuthConfig())

	user := models.User{ID: uuid.New(), Role: models.RoleSuperadmin}

	mockRepo.On("SaveRefreshToken", ctx, user.ID.String(), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).
		Return(nil).Twice()

	pair, err := service.GenerateTokens(ctx, user)
	require.NoError(t, err)

	mockRepo.On("GetRefreshToken", ctx, user.ID.String(), pair.RefreshToken).Return(true, nil).Once()
	mockRepo.On("DeleteRefreshToken", ctx, user.ID.String(), pair.RefreshToken).Return(nil).Once()

	next, err := service.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, next.UserID)

	// the role claim survives rotation
	claims, err := service.ParseAccessToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperadmin, claims.Role)

	mockRepo.AssertExpectations(t)
}

func TestTokenService_RefreshTokens_RejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testAuthConfig())

	user := models.User{ID: uuid.New(), Role: models.RoleOrganizer}
	mockRepo.On("SaveRefreshToken", ctx, user.ID.String(), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).
		Return(nil).Once()

	pair, err := service.GenerateTokens(ctx, user)
	require.NoError(t, err)

	// revoked server-side: signature still valid, storage says no
	mockRepo.On("GetRefreshToken", ctx, user.ID.String(), pair.RefreshToken).Return(false, nil).Once()

	_, err = service.RefreshTokens(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RefreshTokens_RejectsGarbage(t *testing.T) {
	service := NewTokenService(new(MockTokenRepository), testAuthConfig())

	_, err := service.RefreshTokens(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
