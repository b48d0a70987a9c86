package identity

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	members map[string]Member // keyed by username
}

// NewMemoryRepository builds an in-memory member store for development and
// testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{members: make(map[string]Member)}
}

func (r *memoryRepository) Create(_ context.Context, member Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.members[member.Username]; exists {
		return errors.New("member exists")
	}
	r.members[member.Username] = member
	return nil
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[username]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return member, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, member := range r.members {
		if member.ID == id {
			return member, nil
		}
	}
	return Member{}, ErrMemberNotFound
}

func (r *memoryRepository) UpdateTokenVersion(_ context.Context, id string, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for username, member := range r.members {
		if member.ID == id {
			member.TokenVersion = version
			r.members[username] = member
			return nil
		}
	}
	return ErrMemberNotFound
}

func (r *memoryRepository) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for username, member := range r.members {
		if member.ID == id {
			member.LastLogin = at
			r.members[username] = member
			return nil
		}
	}
	return ErrMemberNotFound
}
