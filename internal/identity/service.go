package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service manages member lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new household member and stores a hashed PIN.
func (s *Service) Register(ctx context.Context, creds Credentials) (Member, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return Member{}, errors.New("username is required")
	}
	if len(creds.PIN) < 4 {
		return Member{}, errors.New("PIN must be at least 4 digits")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.PIN), bcrypt.DefaultCost)
	if err != nil {
		return Member{}, err
	}

	member := Member{
		ID:        uuid.New().String(),
		Username:  username,
		PINHash:   hash,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return Member{}, err
	}

	return member, nil
}

// Authenticate verifies credentials and records the login time.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Member, error) {
	member, err := s.repo.FindByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		return Member{}, err
	}

	if err := bcrypt.CompareHashAndPassword(member.PINHash, []byte(creds.PIN)); err != nil {
		return Member{}, errors.New("invalid PIN")
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastLogin(ctx, member.ID, now); err != nil {
		return Member{}, err
	}
	member.LastLogin = now

	return member, nil
}
