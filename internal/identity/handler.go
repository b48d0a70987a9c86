package identity

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes member registration.
type Handler struct {
	service *Service
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

type memberResponse struct {
	MemberID string `json:"member_id"`
	Username string `json:"username"`
}

// Register handles member onboarding.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	member, err := h.service.Register(c.UserContext(), Credentials{Username: req.Username, PIN: req.PIN})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(memberResponse{MemberID: member.ID, Username: member.Username})
}
