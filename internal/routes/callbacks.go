package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// RegisterCallbackRoutes wires the gateway webhook endpoint. Authentication
// happens inside each provider via its own signature scheme.
func RegisterCallbackRoutes(r fiber.Router, registry *provider.Registry) {
	r.Post("/callback/:provider", func(c *fiber.Ctx) error {
		p, err := registry.Resolve(c.Params("provider"))
		if err != nil {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return p.Callback(c)
	})
}
