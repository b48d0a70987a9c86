package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandonscollins/familymoney/internal/query"
)

// RegisterBalanceRoutes wires the read-only query endpoints.
func RegisterBalanceRoutes(r fiber.Router, h *query.Handler) {
	r.Get("/balances", h.AllBalances)
	r.Get("/children/:childId/balance", h.Balance)
	r.Get("/children/:childId/history", h.History)
	r.Get("/dashboard", h.Dashboard)
}
