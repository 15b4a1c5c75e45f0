package provider

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type stubProvider struct {
	name  string
	valid bool
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) CreatePayment(_ context.Context, _ *Order, _ Hook, _ CreateOptions) (*Action, error) {
	return &Action{Provider: p.name}, nil
}

func (p *stubProvider) Callback(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func (p *stubProvider) IsValid() bool { return p.valid }

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{name: "platon", valid: true})

	p, err := r.Resolve("platon")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Name() != "platon" {
		t.Fatalf("resolved wrong provider: %s", p.Name())
	}

	if _, err := r.Resolve("stripe"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	if len(r.Names()) != 0 {
		t.Fatalf("fresh registry should be empty")
	}
	r.Register(&stubProvider{name: "platon"})
	names := r.Names()
	if len(names) != 1 || names[0] != "platon" {
		t.Fatalf("unexpected names: %v", names)
	}
}
