package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/brandonscollins/familymoney/internal/ledger"
	"github.com/brandonscollins/familymoney/internal/logging"
)

func newGateway(cfg Config) (*Gateway, *ledger.MemoryStore) {
	store := ledger.NewMemoryStore()
	engine := ledger.NewEngine(store, store)
	return NewGateway(engine, nil, cfg, logging.Discard()), store
}

func rejectionFrom(t *testing.T, err error) *Rejection {
	t.Helper()
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected *Rejection, got %v", err)
	}
	return rej
}

func TestGateway_RecordsAuthorizedSubmission(t *testing.T) {
	gw, store := newGateway(Config{MinAmountCents: 1})
	child := ledger.MustSeedChild(store, "Alex")
	ctx := context.Background()

	tx, err := gw.Submit(ctx, Request{
		ChildID: "1",
		Amount:  "5.00",
		Reason:  "allowance",
		Actor:   Actor{MemberID: "parent-1", Authenticated: true},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if tx.ChildID != child.ID || tx.Amount.Cents != 500 || tx.Actor != "parent-1" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}

	count, _ := store.CountByChild(ctx, child.ID)
	if count != 1 {
		t.Fatalf("expected 1 durable transaction, got %d", count)
	}
}

func TestGateway_RejectsInvalidInput(t *testing.T) {
	gw, store := newGateway(Config{AllowGuests: true, MinAmountCents: 1})
	ledger.MustSeedChild(store, "Alex")
	ctx := context.Background()

	cases := []struct {
		name string
		req  Request
	}{
		{"missing child", Request{ChildID: "", Amount: "5.00", Reason: "x"}},
		{"non-numeric child", Request{ChildID: "abc", Amount: "5.00", Reason: "x"}},
		{"negative child id", Request{ChildID: "-3", Amount: "5.00", Reason: "x"}},
		{"non-numeric amount", Request{ChildID: "1", Amount: "abc", Reason: "x"}},
		{"empty amount", Request{ChildID: "1", Amount: "", Reason: "x"}},
		{"empty reason", Request{ChildID: "1", Amount: "5.00", Reason: ""}},
		{"blank reason", Request{ChildID: "1", Amount: "5.00", Reason: "   "}},
		{"zero amount below minimum", Request{ChildID: "1", Amount: "0.00", Reason: "memo"}},
	}

	for _, tc := range cases {
		_, err := gw.Submit(ctx, tc.req)
		rej := rejectionFrom(t, err)
		if rej.Code != RejectValidation {
			t.Fatalf("%s: expected %s, got %s", tc.name, RejectValidation, rej.Code)
		}
	}

	count, _ := store.CountByChild(ctx, 1)
	if count != 0 {
		t.Fatalf("rejected submissions must not write, count=%d", count)
	}
}

func TestGateway_ZeroAmountAllowedWhenMinimumIsZero(t *testing.T) {
	gw, store := newGateway(Config{AllowGuests: true, MinAmountCents: 0})
	ledger.MustSeedChild(store, "Alex")

	tx, err := gw.Submit(context.Background(), Request{ChildID: "1", Amount: "0.00", Reason: "memo entry"})
	if err != nil {
		t.Fatalf("zero-amount memo should be accepted: %v", err)
	}
	if tx.Amount.Cents != 0 {
		t.Fatalf("expected 0 cents, got %d", tx.Amount.Cents)
	}
}

func TestGateway_GuestAuthorization(t *testing.T) {
	guest := Request{ChildID: "1", Amount: "5.00", Reason: "allowance"}

	gw, store := newGateway(Config{AllowGuests: false, MinAmountCents: 1, LoginPath: "/login"})
	ledger.MustSeedChild(store, "Alex")

	_, err := gw.Submit(context.Background(), guest)
	rej := rejectionFrom(t, err)
	if rej.Code != RejectUnauthorized {
		t.Fatalf("expected %s, got %s", RejectUnauthorized, rej.Code)
	}
	if rej.LoginPath != "/login" {
		t.Fatalf("unauthorized rejection should carry a login hint, got %q", rej.LoginPath)
	}

	// Identical request succeeds when guests are enabled.
	gw2, store2 := newGateway(Config{AllowGuests: true, MinAmountCents: 1})
	ledger.MustSeedChild(store2, "Alex")
	tx, err := gw2.Submit(context.Background(), guest)
	if err != nil {
		t.Fatalf("guest submit with flag enabled: %v", err)
	}
	if tx.Actor != ledger.GuestActor {
		t.Fatalf("expected guest actor, got %q", tx.Actor)
	}
}

func TestGateway_UnknownChildIsNotFound(t *testing.T) {
	gw, _ := newGateway(Config{AllowGuests: true, MinAmountCents: 1})

	_, err := gw.Submit(context.Background(), Request{ChildID: "77", Amount: "5.00", Reason: "allowance"})
	rej := rejectionFrom(t, err)
	if rej.Code != RejectNotFound {
		t.Fatalf("expected %s, got %s", RejectNotFound, rej.Code)
	}
}

func TestGateway_ValidationRunsBeforeAuthorization(t *testing.T) {
	// A malformed request from a guest reports the validation failure, not
	// the missing login: the gates run in pipeline order.
	gw, store := newGateway(Config{AllowGuests: false, MinAmountCents: 1})
	ledger.MustSeedChild(store, "Alex")

	_, err := gw.Submit(context.Background(), Request{ChildID: "1", Amount: "abc", Reason: "x"})
	rej := rejectionFrom(t, err)
	if rej.Code != RejectValidation {
		t.Fatalf("expected %s, got %s", RejectValidation, rej.Code)
	}
}

func TestGateway_ResubmissionCreatesDuplicate(t *testing.T) {
	gw, store := newGateway(Config{AllowGuests: true, MinAmountCents: 1})
	child := ledger.MustSeedChild(store, "Alex")
	req := Request{ChildID: "1", Amount: "5.00", Reason: "allowance"}
	ctx := context.Background()

	if _, err := gw.Submit(ctx, req); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := gw.Submit(ctx, req); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	count, _ := store.CountByChild(ctx, child.ID)
	if count != 2 {
		t.Fatalf("gateway is idempotency-unaware, expected 2 transactions, got %d", count)
	}
}
