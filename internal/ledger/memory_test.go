package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/brandonscollins/familymoney/internal/money"
)

func TestMemoryStore_AppendRequiresExistingChild(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Append(ctx, 42, money.FromCents(500), "allowance", GuestActor, time.Now())
	if !errors.Is(err, ErrChildNotFound) {
		t.Fatalf("expected ErrChildNotFound, got %v", err)
	}

	child := MustSeedChild(store, "Alex")
	count, err := store.CountByChild(ctx, child.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed append must not create transactions, count=%d", count)
	}
}

func TestMemoryStore_AppendRejectsBlankReason(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	child := MustSeedChild(store, "Alex")

	for _, reason := range []string{"", "   "} {
		if _, err := store.Append(ctx, child.ID, money.FromCents(100), reason, GuestActor, time.Now()); !errors.Is(err, ErrValidation) {
			t.Fatalf("reason %q: expected ErrValidation, got %v", reason, err)
		}
	}

	count, _ := store.CountByChild(ctx, child.ID)
	if count != 0 {
		t.Fatalf("rejected appends must not persist, count=%d", count)
	}
}

func TestMemoryStore_CreateRejectsBlankName(t *testing.T) {
	store := NewMemoryStore()
	for _, name := range []string{"", "  \t "} {
		if _, err := store.Create(context.Background(), name); !errors.Is(err, ErrValidation) {
			t.Fatalf("name %q: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestMemoryStore_ListOrdersByNameAscending(t *testing.T) {
	store := NewMemoryStore()
	MustSeedChild(store, "Morgan")
	MustSeedChild(store, "Alex")
	MustSeedChild(store, "Casey")

	children, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	got := make([]string, len(children))
	for i, c := range children {
		got[i] = c.Name
	}
	want := []string{"Alex", "Casey", "Morgan"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestMemoryStore_ListByChildTieBreaksOnIDDescending(t *testing.T) {
	store := NewMemoryStore()
	child := MustSeedChild(store, "Alex")

	// Three entries sharing one timestamp: ordering must still be total.
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := MustSeedTransaction(store, child.ID, 100, "one", at)
	second := MustSeedTransaction(store, child.ID, 200, "two", at)
	third := MustSeedTransaction(store, child.ID, 300, "three", at)

	txs, err := store.ListByChild(context.Background(), child.ID, 0, -1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].ID != third.ID || txs[1].ID != second.ID || txs[2].ID != first.ID {
		t.Fatalf("expected id-descending tie-break, got %d,%d,%d", txs[0].ID, txs[1].ID, txs[2].ID)
	}
}

func TestMemoryStore_DeleteWithTransactionsNeedsCascade(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	child := MustSeedChild(store, "Alex")
	MustSeedTransaction(store, child.ID, 500, "allowance", time.Now())

	if err := store.Delete(ctx, child.ID, false); !errors.Is(err, ErrChildHasTransactions) {
		t.Fatalf("expected ErrChildHasTransactions, got %v", err)
	}

	// Failed delete leaves history intact and queryable.
	count, _ := store.CountByChild(ctx, child.ID)
	if count != 1 {
		t.Fatalf("history changed after refused delete, count=%d", count)
	}

	if err := store.Delete(ctx, child.ID, true); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if _, err := store.Get(ctx, child.ID); !errors.Is(err, ErrChildNotFound) {
		t.Fatalf("expected child gone, got %v", err)
	}
	count, _ = store.CountByChild(ctx, child.ID)
	if count != 0 {
		t.Fatalf("cascade left %d orphaned transactions", count)
	}
}

func TestMemoryStore_ConcurrentAppendsAllVisible(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	child := MustSeedChild(store, "Alex")

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := store.Append(ctx, child.ID, money.FromCents(100), fmt.Sprintf("chore %d", i), GuestActor, time.Now()); err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	count, err := store.CountByChild(ctx, child.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != workers {
		t.Fatalf("expected %d durable transactions, got %d", workers, count)
	}
}

func TestMemoryStore_ListRecentSpansChildren(t *testing.T) {
	store := NewMemoryStore()
	alex := MustSeedChild(store, "Alex")
	casey := MustSeedChild(store, "Casey")

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	MustSeedTransaction(store, alex.ID, 100, "oldest", base)
	MustSeedTransaction(store, casey.ID, 200, "middle", base.Add(time.Minute))
	newest := MustSeedTransaction(store, alex.ID, 300, "newest", base.Add(2*time.Minute))

	recent, err := store.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 items, got %d", len(recent))
	}
	if recent[0].ID != newest.ID {
		t.Fatalf("expected newest first, got id %d", recent[0].ID)
	}
}
