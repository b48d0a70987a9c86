package child

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandonscollins/familymoney/internal/ledger"
	"github.com/brandonscollins/familymoney/internal/notification"
)

// Service exposes the administrative child registry operations.
type Service struct {
	repo     ledger.ChildRepository
	notifier notification.Notifier
}

// NewService builds a child registry service.
func NewService(repo ledger.ChildRepository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create registers a child under the given display name.
func (s *Service) Create(ctx context.Context, name string) (ledger.Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ledger.Child{}, fmt.Errorf("%w: name must not be empty", ledger.ErrValidation)
	}
	return s.repo.Create(ctx, name)
}

// Get fetches one child by id.
func (s *Service) Get(ctx context.Context, id int64) (ledger.Child, error) {
	return s.repo.Get(ctx, id)
}

// List returns all children ordered by name ascending.
func (s *Service) List(ctx context.Context) ([]ledger.Child, error) {
	return s.repo.List(ctx)
}

// Delete removes a child. Without cascade the delete is refused while
// transactions still reference the child.
func (s *Service) Delete(ctx context.Context, id int64, cascade bool) error {
	removed, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, cascade); err != nil {
		return err
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind: notification.KindChildRemoved,
			Body: fmt.Sprintf("%s was removed from the ledger", removed.Name),
		})
	}
	return nil
}
