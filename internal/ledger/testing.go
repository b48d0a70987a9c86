package ledger

import (
	"context"
	"time"

	"github.com/brandonscollins/familymoney/internal/money"
)

// MustSeedChild is a test helper that registers a child on the in-memory
// store, panicking on error.
func MustSeedChild(store *MemoryStore, name string) Child {
	child, err := store.Create(context.Background(), name)
	if err != nil {
		panic(err)
	}
	return child
}

// MustSeedTransaction is a test helper that appends a transaction at the
// given time, panicking on error.
func MustSeedTransaction(store *MemoryStore, childID int64, cents int64, reason string, at time.Time) Transaction {
	tx, err := store.Append(context.Background(), childID, money.FromCents(cents), reason, GuestActor, at)
	if err != nil {
		panic(err)
	}
	return tx
}
