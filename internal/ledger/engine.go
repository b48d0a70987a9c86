package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brandonscollins/familymoney/internal/money"
)

// Engine enforces recording invariants and derives balances and histories
// from the transaction store. Balances are always a full fold over the
// child's history; nothing is cached.
type Engine struct {
	children ChildRepository
	store    TransactionStore
}

// NewEngine wires the engine to its storage collaborators.
func NewEngine(children ChildRepository, store TransactionStore) *Engine {
	return &Engine{children: children, store: store}
}

// ValidateEntry applies the recording rules shared by every balance-affecting
// write path: the reason must be non-blank and the amount magnitude must meet
// minCents. A minCents of zero legalises zero-amount memo entries.
func ValidateEntry(amount money.Money, reason string, minCents int64) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: reason must not be empty", ErrValidation)
	}
	if amount.Abs() < minCents {
		return fmt.Errorf("%w: amount magnitude below minimum of %d cents", ErrValidation, minCents)
	}
	return nil
}

// Record validates and durably appends a transaction for the child.
func (e *Engine) Record(ctx context.Context, childID int64, amount money.Money, reason, actor string) (Transaction, error) {
	if childID <= 0 {
		return Transaction{}, fmt.Errorf("%w: child id must be positive", ErrValidation)
	}
	if err := ValidateEntry(amount, reason, 0); err != nil {
		return Transaction{}, err
	}
	if actor == "" {
		actor = GuestActor
	}
	return e.store.Append(ctx, childID, amount, strings.TrimSpace(reason), actor, time.Now().UTC())
}

// Balance folds the child's full transaction history into its current
// balance. Store failures surface as ErrStoreUnavailable: the balance is
// unknown, never zero.
func (e *Engine) Balance(ctx context.Context, childID int64) (Balance, error) {
	if _, err := e.children.Get(ctx, childID); err != nil {
		return Balance{}, err
	}

	txs, err := e.store.ListByChild(ctx, childID, 0, -1)
	if err != nil {
		return Balance{}, err
	}

	total := money.Money{}
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return Balance{ChildID: childID, Total: total, AsOf: time.Now().UTC()}, nil
}

// AllBalances computes the balance of every registered child, name
// ascending. Children with no transactions report a zero balance rather than
// being skipped.
func (e *Engine) AllBalances(ctx context.Context) ([]ChildBalance, error) {
	children, err := e.children.List(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]ChildBalance, 0, len(children))
	for _, child := range children {
		txs, err := e.store.ListByChild(ctx, child.ID, 0, -1)
		if err != nil {
			return nil, err
		}
		total := money.Money{}
		for _, tx := range txs {
			total = total.Add(tx.Amount)
		}
		balances = append(balances, ChildBalance{Child: child, Balance: total})
	}
	return balances, nil
}

// History returns one page of the child's transaction history, newest first.
// The requested page is clamped to [1, max(1, totalPages)]: an out-of-range
// request returns the nearest valid page, and a child with no transactions
// yields an empty first page with TotalPages 0.
func (e *Engine) History(ctx context.Context, childID int64, page, pageSize int) (HistoryPage, error) {
	if _, err := e.children.Get(ctx, childID); err != nil {
		return HistoryPage{}, err
	}
	if pageSize < 1 {
		return HistoryPage{}, fmt.Errorf("%w: page size must be at least 1", ErrValidation)
	}

	count, err := e.store.CountByChild(ctx, childID)
	if err != nil {
		return HistoryPage{}, err
	}

	totalPages := (count + pageSize - 1) / pageSize
	maxPage := totalPages
	if maxPage < 1 {
		maxPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	items, err := e.store.ListByChild(ctx, childID, (page-1)*pageSize, pageSize)
	if err != nil {
		return HistoryPage{}, err
	}

	return HistoryPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: count,
	}, nil
}

// Recent returns the newest transactions across every child, for the
// household dashboard.
func (e *Engine) Recent(ctx context.Context, limit int) ([]Transaction, error) {
	if limit < 1 {
		limit = 5
	}
	return e.store.ListRecent(ctx, limit)
}
