package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/brandonscollins/familymoney/internal/money"
)

// GuestActor labels transactions recorded without an authenticated member.
const GuestActor = "guest"

var (
	// ErrValidation indicates malformed input: user-correctable, never retried
	// automatically.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the requester may not submit transactions.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrChildNotFound indicates the referenced child does not exist.
	ErrChildNotFound = errors.New("child not found")

	// ErrChildHasTransactions blocks deleting a child that is still referenced
	// by transactions unless a cascading delete was requested.
	ErrChildHasTransactions = errors.New("child has transactions")

	// ErrStoreUnavailable indicates the backing store failed. Callers must
	// treat balances as unknown, never as zero or empty.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Child is the entity whose allowance balance is tracked. Children are
// created only by explicit administrative action, never implicitly by a
// transaction.
type Child struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Transaction is a single signed monetary entry against a child. Immutable
// once recorded.
type Transaction struct {
	ID        int64
	ChildID   int64
	Amount    money.Money
	Reason    string
	Actor     string
	CreatedAt time.Time
}

// Balance is the derived sum of a child's transactions. It is never stored;
// every value is a fresh fold over the transaction store.
type Balance struct {
	ChildID int64
	Total   money.Money
	AsOf    time.Time
}

// ChildBalance pairs a child with its derived balance for the all-children
// listing.
type ChildBalance struct {
	Child   Child
	Balance money.Money
}

// HistoryPage is one page of a child's transaction history, newest first.
type HistoryPage struct {
	Items      []Transaction
	Page       int
	PageSize   int
	TotalPages int
	TotalItems int
}

// ChildRepository persists the child registry.
type ChildRepository interface {
	Create(ctx context.Context, name string) (Child, error)
	Get(ctx context.Context, id int64) (Child, error)
	// List returns all children ordered by name ascending.
	List(ctx context.Context) ([]Child, error)
	// Delete removes a child. Without cascade it fails with
	// ErrChildHasTransactions when transactions still reference the child;
	// with cascade those transactions are removed atomically first.
	Delete(ctx context.Context, id int64, cascade bool) error
}

// TransactionStore persists signed ledger entries. Appends are durable
// before the call returns and atomic with respect to the child existence
// check: a concurrent child deletion can never leave an orphaned entry.
type TransactionStore interface {
	Append(ctx context.Context, childID int64, amount money.Money, reason, actor string, at time.Time) (Transaction, error)
	// ListByChild returns transactions ordered by (created_at DESC, id DESC);
	// the id tie-break keeps pagination stable for same-millisecond entries.
	// A negative limit returns the child's full history.
	ListByChild(ctx context.Context, childID int64, offset, limit int) ([]Transaction, error)
	CountByChild(ctx context.Context, childID int64) (int, error)
	// ListRecent returns the newest transactions across all children.
	ListRecent(ctx context.Context, limit int) ([]Transaction, error)
}
