package query

import (
	"context"
	"time"

	"github.com/brandonscollins/familymoney/internal/ledger"
)

// displayDateLayout matches the date rendering of the history modal,
// e.g. "Jan 10, 2024".
const displayDateLayout = "Jan 2, 2006"

// TransactionView is the read-model for one transaction. It carries the raw
// cents and full timestamp alongside the formatted fields so any presentation
// layer can reproduce the display losslessly.
type TransactionView struct {
	ID          int64  `json:"id"`
	ChildID     int64  `json:"child_id"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	IsPositive  bool   `json:"is_positive"`
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`
}

// BalanceView is the read-model for one child's derived balance.
type BalanceView struct {
	ChildID    int64  `json:"child_id"`
	ChildName  string `json:"child_name"`
	Balance    string `json:"balance"`
	Cents      int64  `json:"balance_cents"`
	IsNegative bool   `json:"is_negative"`
}

// HistoryView is one page of a child's history plus pagination bounds.
type HistoryView struct {
	Transactions []TransactionView `json:"transactions"`
	CurrentPage  int               `json:"current_page"`
	TotalPages   int               `json:"total_pages"`
	TotalItems   int               `json:"total_items"`
}

// DashboardView aggregates recent household activity and all balances.
type DashboardView struct {
	Recent   []TransactionView `json:"recent_transactions"`
	Balances []BalanceView     `json:"balances"`
}

// Service is the read-only query surface over the ledger engine.
type Service struct {
	engine   *ledger.Engine
	pageSize int
}

// NewService builds the query surface with the configured default history
// page size.
func NewService(engine *ledger.Engine, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Service{engine: engine, pageSize: pageSize}
}

// Balance returns the derived balance for one child.
func (s *Service) Balance(ctx context.Context, childID int64) (BalanceView, error) {
	balance, err := s.engine.Balance(ctx, childID)
	if err != nil {
		return BalanceView{}, err
	}
	return BalanceView{
		ChildID:    childID,
		Balance:    balance.Total.Format(),
		Cents:      balance.Total.Cents,
		IsNegative: balance.Total.Cents < 0,
	}, nil
}

// AllBalances returns every child's balance, name ascending. Children
// without transactions appear with a zero balance.
func (s *Service) AllBalances(ctx context.Context) ([]BalanceView, error) {
	balances, err := s.engine.AllBalances(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BalanceView, len(balances))
	for i, cb := range balances {
		out[i] = BalanceView{
			ChildID:    cb.Child.ID,
			ChildName:  cb.Child.Name,
			Balance:    cb.Balance.Format(),
			Cents:      cb.Balance.Cents,
			IsNegative: cb.Balance.Cents < 0,
		}
	}
	return out, nil
}

// History returns one page of a child's transaction history. A pageSize of
// zero or less falls back to the configured default.
func (s *Service) History(ctx context.Context, childID int64, page, pageSize int) (HistoryView, error) {
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	hp, err := s.engine.History(ctx, childID, page, pageSize)
	if err != nil {
		return HistoryView{}, err
	}
	return HistoryView{
		Transactions: toViews(hp.Items),
		CurrentPage:  hp.Page,
		TotalPages:   hp.TotalPages,
		TotalItems:   hp.TotalItems,
	}, nil
}

// Dashboard returns the newest household transactions alongside every
// child's balance.
func (s *Service) Dashboard(ctx context.Context, recentLimit int) (DashboardView, error) {
	recent, err := s.engine.Recent(ctx, recentLimit)
	if err != nil {
		return DashboardView{}, err
	}
	balances, err := s.AllBalances(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	return DashboardView{Recent: toViews(recent), Balances: balances}, nil
}

func toViews(txs []ledger.Transaction) []TransactionView {
	views := make([]TransactionView, len(txs))
	for i, tx := range txs {
		views[i] = TransactionView{
			ID:          tx.ID,
			ChildID:     tx.ChildID,
			Amount:      tx.Amount.Format(),
			AmountCents: tx.Amount.Cents,
			IsPositive:  tx.Amount.IsPositive(),
			Reason:      tx.Reason,
			Date:        tx.CreatedAt.Format(displayDateLayout),
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		}
	}
	return views
}
