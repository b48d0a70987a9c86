package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brandonscollins/familymoney/internal/money"
)

// MemoryStore is a concurrency-safe in-memory registry and transaction store.
// A single mutex guards both tables so an append can never interleave with a
// concurrent child deletion, mirroring the row-lock discipline of the
// Postgres store. Used in tests and as the dev backend when no database is
// configured.
type MemoryStore struct {
	mu          sync.RWMutex
	nextChildID int64
	nextTxID    int64
	children    map[int64]Child
	byChild     map[int64][]Transaction
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		children: make(map[int64]Child),
		byChild:  make(map[int64][]Transaction),
	}
}

var (
	_ ChildRepository  = (*MemoryStore)(nil)
	_ TransactionStore = (*MemoryStore)(nil)
)

// Create registers a child with the given display name.
func (s *MemoryStore) Create(_ context.Context, name string) (Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Child{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextChildID++
	child := Child{ID: s.nextChildID, Name: name, CreatedAt: time.Now().UTC()}
	s.children[child.ID] = child
	return child, nil
}

// Get returns a snapshot of the child with the given id.
func (s *MemoryStore) Get(_ context.Context, id int64) (Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	child, ok := s.children[id]
	if !ok {
		return Child{}, ErrChildNotFound
	}
	return child, nil
}

// List returns all children ordered by name ascending.
func (s *MemoryStore) List(_ context.Context) ([]Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Child, 0, len(s.children))
	for _, child := range s.children {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Delete removes a child, and with cascade also every referencing
// transaction, inside one critical section.
func (s *MemoryStore) Delete(_ context.Context, id int64, cascade bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.children[id]; !ok {
		return ErrChildNotFound
	}
	if len(s.byChild[id]) > 0 && !cascade {
		return ErrChildHasTransactions
	}
	delete(s.byChild, id)
	delete(s.children, id)
	return nil
}

// Append records a transaction after verifying the child still exists. The
// existence check and the write share the store lock.
func (s *MemoryStore) Append(_ context.Context, childID int64, amount money.Money, reason, actor string, at time.Time) (Transaction, error) {
	if strings.TrimSpace(reason) == "" {
		return Transaction{}, fmt.Errorf("%w: reason must not be empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.children[childID]; !ok {
		return Transaction{}, ErrChildNotFound
	}

	s.nextTxID++
	tx := Transaction{
		ID:        s.nextTxID,
		ChildID:   childID,
		Amount:    amount,
		Reason:    strings.TrimSpace(reason),
		Actor:     actor,
		CreatedAt: at,
	}
	s.byChild[childID] = append(s.byChild[childID], tx)
	return tx, nil
}

// ListByChild returns the child's transactions ordered by
// (created_at DESC, id DESC). A negative limit returns the full history.
func (s *MemoryStore) ListByChild(_ context.Context, childID int64, offset, limit int) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byChild[childID]
	ordered := make([]Transaction, len(stored))
	copy(ordered, stored)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID > ordered[j].ID
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(ordered) {
		return []Transaction{}, nil
	}
	ordered = ordered[offset:]
	if limit >= 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	return ordered, nil
}

// CountByChild returns the number of transactions recorded for the child.
func (s *MemoryStore) CountByChild(_ context.Context, childID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byChild[childID]), nil
}

// ListRecent returns the newest transactions across all children.
func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Transaction, 0)
	for _, txs := range s.byChild {
		all = append(all, txs...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
