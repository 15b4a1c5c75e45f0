package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/platon-pay/platon_pay/internal/provider"
)

type stubProvider struct {
	action *provider.Action
	err    error
	orders []*provider.Order
}

func (p *stubProvider) Name() string { return "platon" }

func (p *stubProvider) CreatePayment(_ context.Context, order *provider.Order, _ provider.Hook, _ provider.CreateOptions) (*provider.Action, error) {
	p.orders = append(p.orders, order)
	return p.action, p.err
}

func (p *stubProvider) Callback(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func (p *stubProvider) IsValid() bool { return true }

func setupApp(stub *stubProvider) *fiber.App {
	registry := provider.NewRegistry()
	registry.Register(stub)
	app := fiber.New()
	app.Post("/checkout/:provider", NewHandler(registry).Create)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func TestCreateReturnsAction(t *testing.T) {
	stub := &stubProvider{action: &provider.Action{
		Provider: "platon",
		Kind:     provider.ActionOpen,
		URL:      "https://gw.example/pay",
		Method:   provider.MethodPost,
		Fields:   map[string]string{"sign": "abc"},
	}}
	app := setupApp(stub)

	code, body := postJSON(t, app, "/checkout/platon", `{
		"order_id": "order-1",
		"amount": 10.5,
		"currency": "UAH",
		"description": "Order #1",
		"return_url": "https://shop.example/return",
		"card_id": 0,
		"email": "a@b.com"
	}`)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	var action provider.Action
	if err := json.Unmarshal(body, &action); err != nil {
		t.Fatalf("decode action: %v", err)
	}
	if action.URL != "https://gw.example/pay" || action.Fields["sign"] != "abc" {
		t.Fatalf("unexpected action: %+v", action)
	}

	if len(stub.orders) != 1 {
		t.Fatalf("expected one CreatePayment call, got %d", len(stub.orders))
	}
	order := stub.orders[0]
	if order.ID != "order-1" || order.Payment.Amount != 10.5 || order.Payment.Client.Email != "a@b.com" {
		t.Fatalf("order mapping wrong: %+v", order)
	}
}

func TestCreateUnknownProvider(t *testing.T) {
	app := setupApp(&stubProvider{})

	code, _ := postJSON(t, app, "/checkout/stripe", `{"order_id":"o","amount":1}`)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	stub := &stubProvider{}
	app := setupApp(stub)

	code, _ := postJSON(t, app, "/checkout/platon", `{"amount": 10}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("missing order_id: expected 400, got %d", code)
	}

	code, _ = postJSON(t, app, "/checkout/platon", `{"order_id":"o","amount":0}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("zero amount: expected 400, got %d", code)
	}

	if len(stub.orders) != 0 {
		t.Fatalf("provider must not be called for invalid input")
	}
}

func TestCreateProviderFailure(t *testing.T) {
	stub := &stubProvider{err: errors.New("store down")}
	app := setupApp(stub)

	code, _ := postJSON(t, app, "/checkout/platon", `{"order_id":"o","amount":1}`)
	if code != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
}
