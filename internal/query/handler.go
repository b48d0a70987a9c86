package query

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandonscollins/familymoney/internal/child"
)

// Handler exposes the read-only query endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a query HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balance returns the derived balance for one child.
func (h *Handler) Balance(c *fiber.Ctx) error {
	id, err := child.ParseChildID(c.Params("childId"))
	if err != nil {
		return err
	}
	view, err := h.service.Balance(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// AllBalances returns every child's balance, name ascending.
func (h *Handler) AllBalances(c *fiber.Ctx) error {
	balances, err := h.service.AllBalances(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"balances": balances})
}

// History returns one page of a child's transaction history.
// Query params: page (default 1), page_size (default from configuration).
func (h *Handler) History(c *fiber.Ctx) error {
	id, err := child.ParseChildID(c.Params("childId"))
	if err != nil {
		return err
	}
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 0)
	view, err := h.service.History(c.UserContext(), id, page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Dashboard returns recent household activity plus all balances.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	view, err := h.service.Dashboard(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(view)
}
