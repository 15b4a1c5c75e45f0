package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func setupAPIKeyApp(t *testing.T, key string) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}

	app := fiber.New()
	app.Use(APIKeyAuth(string(hash)))
	app.Post("/resource", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestAPIKeyAuthMissingKey(t *testing.T) {
	app := setupAPIKeyApp(t, "secret")

	req := httptest.NewRequest(fiber.MethodPost, "/resource", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAPIKeyAuthWrongKey(t *testing.T) {
	app := setupAPIKeyApp(t, "secret")

	req := httptest.NewRequest(fiber.MethodPost, "/resource", nil)
	req.Header.Set("X-API-Key", "not-the-secret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAPIKeyAuthValidKey(t *testing.T) {
	app := setupAPIKeyApp(t, "secret")

	req := httptest.NewRequest(fiber.MethodPost, "/resource", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}
