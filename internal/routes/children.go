package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandonscollins/familymoney/internal/child"
)

// RegisterChildRoutes wires child registry endpoints.
func RegisterChildRoutes(r fiber.Router, h *child.Handler) {
	r.Post("/children", h.Create)
	r.Get("/children", h.List)
	r.Get("/children/:childId", h.Get)
	r.Delete("/children/:childId", h.Delete)
}
