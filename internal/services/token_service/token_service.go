package services

import (
	"context"
	"errors"
	"fmt"

	"wedsite/internal/config"
	"wedsite/internal/domain/models"
	libjwt "wedsite/internal/lib/jwt"
	"wedsite/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
)

type TokenService struct {
	repo repository.TokenRepository
	cfg  config.AuthConfig
}

func NewTokenService(repo repository.TokenRepository, cfg config.AuthConfig) *TokenService {
	return &TokenService{repo: repo, cfg: cfg}
}

// GenerateTokens issues an access/refresh pair and registers the refresh token
// in redis for the refresh-token TTL.
func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	const op = "token_service.GenerateTokens"

	accessToken, err := libjwt.NewToken(user, s.cfg.Secret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := libjwt.NewToken(user, s.cfg.Secret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID.String(), refreshToken, s.cfg.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens rotates a refresh token: it must verify, still be present in
// redis, and is consumed before the new pair is issued.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := libjwt.Parse(refreshToken, s.cfg.Secret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidTokenClaims
	}

	exists, err := s.repo.GetRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil || !exists {
		return nil, ErrInvalidToken
	}

	if err := s.repo.DeleteRefreshToken(ctx, claims.UserID, refreshToken); err != nil {
		return nil, fmt.Errorf("token_service.RefreshTokens: %w", err)
	}

	return s.GenerateTokens(ctx, models.User{ID: userID, Role: claims.Role})
}

// RevokeAll drops every refresh token a user holds, e.g. on logout-everywhere.
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	const op = "token_service.RevokeAll"

	if err := s.repo.DeleteAllUserTokens(ctx, userID.String()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ParseAccessToken is used by tests and tooling; the HTTP middleware carries
// its own copy of this logic.
func (s *TokenService) ParseAccessToken(tokenString string) (libjwt.Claims, error) {
	claims, err := libjwt.Parse(tokenString, s.cfg.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return libjwt.Claims{}, ErrInvalidToken
		}
		return libjwt.Claims{}, err
	}
	return claims, nil
}
