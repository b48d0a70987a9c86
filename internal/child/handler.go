package child

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brandonscollins/familymoney/internal/ledger"
)

// Handler exposes child registry HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a child registry HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name string `json:"name"`
}

type childResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func toResponse(c ledger.Child) childResponse {
	return childResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt.Format(time.RFC3339)}
}

// Create registers a new child.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	child, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(toResponse(child))
}

// Get fetches one child.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := ParseChildID(c.Params("childId"))
	if err != nil {
		return err
	}
	child, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(child))
}

// List returns all children, name ascending.
func (h *Handler) List(c *fiber.Ctx) error {
	children, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]childResponse, len(children))
	for i, child := range children {
		out[i] = toResponse(child)
	}
	return c.JSON(fiber.Map{"children": out})
}

// Delete removes a child; pass ?cascade=true to also remove its transactions.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := ParseChildID(c.Params("childId"))
	if err != nil {
		return err
	}
	cascade := c.QueryBool("cascade", false)
	if err := h.service.Delete(c.UserContext(), id, cascade); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ParseChildID converts a route parameter into a positive child id.
func ParseChildID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ledger.ErrChildNotFound
	}
	return id, nil
}
