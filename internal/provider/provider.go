package provider

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Hook runs synchronously before an outbound request is signed, letting the
// host mutate the payment intent (attach metadata, adjust the description).
type Hook func(payment *Payment, p PaymentProvider)

// CreateOptions carries provider-specific options for payment creation.
type CreateOptions map[string]string

// PaymentProvider is the capability every gateway adapter implements. The
// registry selects an implementation by Name.
type PaymentProvider interface {
	Name() string
	CreatePayment(ctx context.Context, order *Order, hook Hook, opts CreateOptions) (*Action, error)
	Callback(c *fiber.Ctx) error
	// IsValid reports whether the provider is configured well enough to be
	// offered to users. Pure function of configuration.
	IsValid() bool
}

// ConfigSource resolves provider configuration values by key, e.g.
// "merchant" and "password".
type ConfigSource interface {
	Config(key string) string
}

// ConfigMap is a ConfigSource backed by a plain map.
type ConfigMap map[string]string

// Config returns the configured value or an empty string.
func (m ConfigMap) Config(key string) string { return m[key] }

// TransactionStore materializes a durable transaction record for an order
// and returns its host-assigned identifier. Providers embed the identifier
// in the signed payload, so the record must exist before signing.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, order *Order, payment *Payment, opts CreateOptions) (string, error)
}

// Processor consumes invoices built from gateway callbacks. Idempotency and
// ordering guarantees are owned by the processor, not by providers.
type Processor interface {
	Process(ctx context.Context, invoice *Invoice) error
}
