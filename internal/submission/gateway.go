package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/brandonscollins/familymoney/internal/ledger"
	"github.com/brandonscollins/familymoney/internal/money"
	"github.com/brandonscollins/familymoney/internal/notification"
)

// RejectionCode identifies why a submission was refused, machine-readably,
// so presentation layers can render a login prompt for unauthorized requests
// and a field-level message for validation failures.
type RejectionCode string

const (
	RejectValidation   RejectionCode = "validation_error"
	RejectUnauthorized RejectionCode = "unauthorized"
	RejectNotFound     RejectionCode = "not_found"
	RejectStoreError   RejectionCode = "store_error"
)

// Rejection is the early-exit outcome of the submission pipeline.
type Rejection struct {
	Code      RejectionCode
	Message   string
	LoginPath string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("submission rejected (%s): %s", r.Code, r.Message)
}

// Actor identifies the requester. A zero Actor is an unauthenticated guest.
type Actor struct {
	MemberID      string
	Authenticated bool
}

// Request carries the raw submission fields as received from the caller.
type Request struct {
	ChildID string
	Amount  string
	Reason  string
	Actor   Actor
}

// Config holds the business rules the gateway enforces.
type Config struct {
	// AllowGuests permits submissions from unauthenticated requesters.
	AllowGuests bool
	// MinAmountCents is the minimum absolute amount; 0 allows zero-amount
	// memo entries.
	MinAmountCents int64
	// LoginPath is included in unauthorized rejections as an actionable hint.
	LoginPath string
}

// Gateway validates and authorizes transaction submissions before handing
// them to the ledger engine. Each submission moves
// Received -> Validated -> Authorized -> Recorded, or exits early with a
// Rejection. The pipeline is idempotency-unaware: resubmitting identical
// data records a second transaction unless the caller supplies an
// Idempotency-Key handled upstream.
type Gateway struct {
	engine   *ledger.Engine
	notifier notification.Notifier
	cfg      Config
	logger   *slog.Logger
}

// NewGateway builds a submission gateway.
func NewGateway(engine *ledger.Engine, notifier notification.Notifier, cfg Config, logger *slog.Logger) *Gateway {
	return &Gateway{engine: engine, notifier: notifier, cfg: cfg, logger: logger}
}

// Submit runs the full pipeline for one transaction request. On success the
// created transaction is returned; on failure the error is a *Rejection and
// nothing was written.
func (g *Gateway) Submit(ctx context.Context, req Request) (ledger.Transaction, error) {
	// Validated gate.
	childID, err := strconv.ParseInt(strings.TrimSpace(req.ChildID), 10, 64)
	if err != nil || childID <= 0 {
		return ledger.Transaction{}, &Rejection{Code: RejectValidation, Message: "please select a child"}
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return ledger.Transaction{}, &Rejection{Code: RejectValidation, Message: "please enter a valid numeric amount"}
	}
	if err := ledger.ValidateEntry(amount, req.Reason, g.cfg.MinAmountCents); err != nil {
		return ledger.Transaction{}, &Rejection{Code: RejectValidation, Message: rejectionMessage(err)}
	}

	// Authorized gate.
	if !req.Actor.Authenticated && !g.cfg.AllowGuests {
		return ledger.Transaction{}, &Rejection{
			Code:      RejectUnauthorized,
			Message:   "you must be logged in to add transactions",
			LoginPath: g.cfg.LoginPath,
		}
	}

	// Recorded gate.
	actor := req.Actor.MemberID
	if actor == "" {
		actor = ledger.GuestActor
	}
	tx, err := g.engine.Record(ctx, childID, amount, req.Reason, actor)
	if err != nil {
		return ledger.Transaction{}, g.reject(err)
	}

	g.logger.InfoContext(ctx, "transaction recorded",
		slog.Int64("transaction_id", tx.ID),
		slog.Int64("child_id", tx.ChildID),
		slog.Int64("amount_cents", tx.Amount.Cents),
		slog.String("actor", tx.Actor),
	)

	if g.notifier != nil {
		_ = g.notifier.Send(ctx, notification.Message{
			Kind: notification.KindTransactionRecorded,
			Body: fmt.Sprintf("%s for child %d: %s", tx.Amount.Format(), tx.ChildID, tx.Reason),
		})
	}

	return tx, nil
}

func (g *Gateway) reject(err error) *Rejection {
	switch {
	case errors.Is(err, ledger.ErrChildNotFound):
		return &Rejection{Code: RejectNotFound, Message: "the selected child does not exist"}
	case errors.Is(err, ledger.ErrValidation):
		return &Rejection{Code: RejectValidation, Message: rejectionMessage(err)}
	default:
		// Store-level failure: the caller must retry the entire submission,
		// never assume partial success.
		return &Rejection{Code: RejectStoreError, Message: "failed to record the transaction, please try again"}
	}
}

func rejectionMessage(err error) string {
	msg := err.Error()
	if cut, ok := strings.CutPrefix(msg, ledger.ErrValidation.Error()+": "); ok {
		return cut
	}
	return msg
}
