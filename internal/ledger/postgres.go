package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandonscollins/familymoney/internal/money"
)

// PostgresStore persists children and transactions in PostgreSQL. It
// implements both ChildRepository and TransactionStore so appends and child
// deletions can coordinate through row locks on the children table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

var (
	_ ChildRepository  = (*PostgresStore)(nil)
	_ TransactionStore = (*PostgresStore)(nil)
)

// Create inserts a child row and returns the assigned id.
func (s *PostgresStore) Create(ctx context.Context, name string) (Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Child{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	row := s.db.QueryRow(ctx, `INSERT INTO children (name) VALUES ($1)
        RETURNING id, name, created_at`, name)
	var child Child
	if err := row.Scan(&child.ID, &child.Name, &child.CreatedAt); err != nil {
		return Child{}, storeErr("create child", err)
	}
	child.CreatedAt = child.CreatedAt.UTC()
	return child, nil
}

// Get fetches a child by id.
func (s *PostgresStore) Get(ctx context.Context, id int64) (Child, error) {
	row := s.db.QueryRow(ctx, `SELECT id, name, created_at FROM children WHERE id = $1`, id)
	var child Child
	if err := row.Scan(&child.ID, &child.Name, &child.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Child{}, ErrChildNotFound
		}
		return Child{}, storeErr("get child", err)
	}
	child.CreatedAt = child.CreatedAt.UTC()
	return child, nil
}

// List returns all children ordered by name ascending, id as tie-break.
func (s *PostgresStore) List(ctx context.Context) ([]Child, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, created_at FROM children ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, storeErr("list children", err)
	}
	defer rows.Close()

	children := make([]Child, 0)
	for rows.Next() {
		var child Child
		if err := rows.Scan(&child.ID, &child.Name, &child.CreatedAt); err != nil {
			return nil, storeErr("scan child", err)
		}
		child.CreatedAt = child.CreatedAt.UTC()
		children = append(children, child)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list children", err)
	}
	return children, nil
}

// Delete removes a child. The child row is locked first so a concurrent
// append either completes before the delete or observes the child as gone.
func (s *PostgresStore) Delete(ctx context.Context, id int64, cascade bool) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storeErr("begin delete child", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var lockedID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM children WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrChildNotFound
		}
		return storeErr("lock child", err)
	}

	var refs int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE child_id = $1`, id).Scan(&refs); err != nil {
		return storeErr("count child transactions", err)
	}
	if refs > 0 {
		if !cascade {
			return ErrChildHasTransactions
		}
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE child_id = $1`, id); err != nil {
			return storeErr("cascade delete transactions", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM children WHERE id = $1`, id); err != nil {
		return storeErr("delete child", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit delete child", err)
	}
	return nil
}

// Append durably records a transaction. The child row is share-locked for
// the duration of the insert, so a concurrent Delete blocks until the append
// commits and can never orphan the new entry.
func (s *PostgresStore) Append(ctx context.Context, childID int64, amount money.Money, reason, actor string, at time.Time) (Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Transaction{}, fmt.Errorf("%w: reason must not be empty", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, storeErr("begin append", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var lockedID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM children WHERE id = $1 FOR SHARE`, childID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrChildNotFound
		}
		return Transaction{}, storeErr("lock child for append", err)
	}

	row := tx.QueryRow(ctx, `INSERT INTO transactions (child_id, amount_cents, reason, actor, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`, childID, amount.Cents, reason, actor, at.UTC())

	entry := Transaction{ChildID: childID, Amount: amount, Reason: reason, Actor: actor}
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return Transaction{}, storeErr("insert transaction", err)
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, storeErr("commit append", err)
	}
	return entry, nil
}

// ListByChild returns transactions ordered by (created_at DESC, id DESC).
// A negative limit returns the full history.
func (s *PostgresStore) ListByChild(ctx context.Context, childID int64, offset, limit int) ([]Transaction, error) {
	const base = `SELECT id, child_id, amount_cents, reason, actor, created_at
        FROM transactions WHERE child_id = $1
        ORDER BY created_at DESC, id DESC`

	var (
		rows pgx.Rows
		err  error
	)
	if limit < 0 {
		rows, err = s.db.Query(ctx, base+` OFFSET $2`, childID, offset)
	} else {
		rows, err = s.db.Query(ctx, base+` OFFSET $2 LIMIT $3`, childID, offset, limit)
	}
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// CountByChild returns the number of transactions recorded for the child.
func (s *PostgresStore) CountByChild(ctx context.Context, childID int64) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE child_id = $1`, childID).Scan(&count); err != nil {
		return 0, storeErr("count transactions", err)
	}
	return count, nil
}

// ListRecent returns the newest transactions across all children.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `SELECT id, child_id, amount_cents, reason, actor, created_at
        FROM transactions ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storeErr("list recent transactions", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	txs := make([]Transaction, 0)
	for rows.Next() {
		var (
			entry Transaction
			cents int64
		)
		if err := rows.Scan(&entry.ID, &entry.ChildID, &cents, &entry.Reason, &entry.Actor, &entry.CreatedAt); err != nil {
			return nil, storeErr("scan transaction", err)
		}
		entry.Amount = money.FromCents(cents)
		entry.CreatedAt = entry.CreatedAt.UTC()
		txs = append(txs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate transactions", err)
	}
	return txs, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
