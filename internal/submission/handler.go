package submission

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the transaction submission endpoint.
type Handler struct {
	gateway *Gateway
}

// NewHandler builds a submission HTTP handler.
func NewHandler(gateway *Gateway) *Handler {
	return &Handler{gateway: gateway}
}

type submitRequest struct {
	ChildID json.Number `json:"child_id"`
	Amount  string      `json:"amount"`
	Reason  string      `json:"reason"`
}

type submitResponse struct {
	ID          int64  `json:"id"`
	ChildID     int64  `json:"child_id"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
	Actor       string `json:"actor"`
	CreatedAt   string `json:"created_at"`
	Message     string `json:"message"`
}

// Submit handles POST /transactions. The requester identity is taken from
// the auth middleware when present; otherwise the request is treated as a
// guest submission.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	actor := Actor{}
	if memberID, ok := c.Locals("member_id").(string); ok && memberID != "" {
		actor = Actor{MemberID: memberID, Authenticated: true}
	}

	tx, err := h.gateway.Submit(c.UserContext(), Request{
		ChildID: req.ChildID.String(),
		Amount:  req.Amount,
		Reason:  req.Reason,
		Actor:   actor,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(submitResponse{
		ID:          tx.ID,
		ChildID:     tx.ChildID,
		Amount:      tx.Amount.String(),
		AmountCents: tx.Amount.Cents,
		Reason:      tx.Reason,
		Actor:       tx.Actor,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		Message:     "transaction added successfully",
	})
}
