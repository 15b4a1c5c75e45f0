package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuth guards host-initiated endpoints with a single bcrypt-hashed API
// key. Callback endpoints stay outside this guard: gateways authenticate
// with their own signature scheme instead.
func APIKeyAuth(hash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(apiKeyHeader)
		if key == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing API key")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid API key")
		}
		return c.Next()
	}
}
