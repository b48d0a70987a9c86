package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brandonscollins/familymoney/internal/ledger"
)

func newService(pageSize int) (*Service, *ledger.MemoryStore) {
	store := ledger.NewMemoryStore()
	return NewService(ledger.NewEngine(store, store), pageSize), store
}

func TestService_BalanceFormatting(t *testing.T) {
	svc, store := newService(10)
	ctx := context.Background()
	child := ledger.MustSeedChild(store, "Alex")
	ledger.MustSeedTransaction(store, child.ID, 500, "allowance", time.Now())
	ledger.MustSeedTransaction(store, child.ID, -250, "snack", time.Now())

	view, err := svc.Balance(ctx, child.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if view.Balance != "$2.50" || view.Cents != 250 || view.IsNegative {
		t.Fatalf("unexpected balance view: %+v", view)
	}
}

func TestService_NegativeBalanceClassification(t *testing.T) {
	svc, store := newService(10)
	child := ledger.MustSeedChild(store, "Alex")
	ledger.MustSeedTransaction(store, child.ID, -750, "video game", time.Now())

	view, err := svc.Balance(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if view.Balance != "-$7.50" || !view.IsNegative {
		t.Fatalf("unexpected negative balance view: %+v", view)
	}
}

func TestService_AllBalancesNameAscendingWithZeroes(t *testing.T) {
	svc, store := newService(10)
	morgan := ledger.MustSeedChild(store, "Morgan")
	ledger.MustSeedChild(store, "Alex")
	ledger.MustSeedTransaction(store, morgan.ID, 100, "chores", time.Now())

	balances, err := svc.AllBalances(context.Background())
	if err != nil {
		t.Fatalf("all balances: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}
	if balances[0].ChildName != "Alex" || balances[0].Balance != "$0.00" {
		t.Fatalf("expected Alex first with $0.00, got %+v", balances[0])
	}
	if balances[1].ChildName != "Morgan" || balances[1].Balance != "$1.00" {
		t.Fatalf("expected Morgan with $1.00, got %+v", balances[1])
	}
}

func TestService_HistoryViewFields(t *testing.T) {
	svc, store := newService(10)
	child := ledger.MustSeedChild(store, "Alex")
	at := time.Date(2026, 1, 10, 15, 4, 5, 0, time.UTC)
	ledger.MustSeedTransaction(store, child.ID, -250, "snack", at)

	view, err := svc.History(context.Background(), child.ID, 1, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(view.Transactions) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Transactions))
	}
	tx := view.Transactions[0]
	if tx.Amount != "-$2.50" || tx.IsPositive {
		t.Fatalf("unexpected amount rendering: %+v", tx)
	}
	if tx.Date != "Jan 10, 2026" {
		t.Fatalf("unexpected date rendering: %q", tx.Date)
	}
	if tx.AmountCents != -250 || tx.CreatedAt != at.Format(time.RFC3339) {
		t.Fatalf("raw fields must allow lossless re-rendering: %+v", tx)
	}
}

func TestService_HistoryUsesConfiguredDefaultPageSize(t *testing.T) {
	svc, store := newService(5)
	child := ledger.MustSeedChild(store, "Alex")
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		ledger.MustSeedTransaction(store, child.ID, 100, fmt.Sprintf("entry %d", i), base.Add(time.Duration(i)*time.Second))
	}

	view, err := svc.History(context.Background(), child.ID, 1, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(view.Transactions) != 5 || view.TotalPages != 3 {
		t.Fatalf("expected default page size 5 with 3 pages, got items=%d totalPages=%d", len(view.Transactions), view.TotalPages)
	}
}

func TestService_DashboardAggregates(t *testing.T) {
	svc, store := newService(10)
	alex := ledger.MustSeedChild(store, "Alex")
	casey := ledger.MustSeedChild(store, "Casey")
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	ledger.MustSeedTransaction(store, alex.ID, 500, "allowance", base)
	ledger.MustSeedTransaction(store, casey.ID, -100, "candy", base.Add(time.Minute))

	view, err := svc.Dashboard(context.Background(), 5)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(view.Recent) != 2 || view.Recent[0].Reason != "candy" {
		t.Fatalf("expected newest-first recent list, got %+v", view.Recent)
	}
	if len(view.Balances) != 2 {
		t.Fatalf("expected balances for both children, got %d", len(view.Balances))
	}
}
