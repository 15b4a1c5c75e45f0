package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/platon-pay/platon_pay/internal/checkout"
)

// RegisterCheckoutRoutes wires payment-initiation endpoints.
func RegisterCheckoutRoutes(r fiber.Router, h *checkout.Handler) {
	r.Post("/checkout/:provider", h.Create)
}
