package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandonscollins/familymoney/internal/identity"
)

// RegisterMemberRoutes wires member onboarding endpoints.
func RegisterMemberRoutes(r fiber.Router, h *identity.Handler) {
	r.Post("/members", h.Register)
}
