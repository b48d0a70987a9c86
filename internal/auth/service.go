package auth

import (
	"context"
	"errors"
	"time"

	"github.com/brandonscollins/familymoney/internal/config"
	"github.com/brandonscollins/familymoney/internal/identity"
)

// Service issues and refreshes member tokens.
type Service struct {
	cfg     config.Config
	members identity.Repository
}

// NewService builds an auth service over the member repository.
func NewService(cfg config.Config, members identity.Repository) *Service {
	return &Service{cfg: cfg, members: members}
}

// TokenPair carries both tokens issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login issues tokens for an already-authenticated member.
func (s *Service) Login(member identity.Member) (TokenPair, error) {
	access, accessExp, err := s.sign(member, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.sign(member, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: int64(time.Until(accessExp).Seconds())}, nil
}

func (s *Service) sign(member identity.Member, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := map[string]any{
		"sub":      member.ID,
		"username": member.Username,
		"ver":      member.TokenVersion,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Refresh verifies the refresh token and returns a new access token if valid.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := ParseAndVerifyHS256(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", 0, errors.New("invalid refresh token")
	}
	sub, _ := claims["sub"].(string)
	verFloat, _ := claims["ver"].(float64)
	ver := int(verFloat)

	member, err := s.members.FindByID(ctx, sub)
	if err != nil {
		return "", 0, errors.New("member not found")
	}
	if member.TokenVersion != ver {
		return "", 0, errors.New("token version invalidated")
	}

	accessClaims := map[string]any{
		"sub":      sub,
		"username": member.Username,
		"ver":      ver,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.AccessTokenTTL).Unix(),
	}
	signed, err := SignHS256(accessClaims, []byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// Logout increments token version so older tokens become invalid.
func (s *Service) Logout(ctx context.Context, memberID string) error {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	return s.members.UpdateTokenVersion(ctx, member.ID, member.TokenVersion+1)
}
