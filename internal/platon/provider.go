package platon

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// Name is the registry key for the Platon gateway.
const Name = "platon"

const (
	publicURL         = "https://secure.platononline.com/payment/auth"
	paymentMethodCard = "CC"
	recurringMarker   = "recurring"
	maxDescriptionLen = 255
)

// statuses maps gateway transaction statuses to host statuses. Statuses
// outside this table are acknowledged but produce no state transition.
var statuses = map[string]provider.Status{
	"SALE":       provider.StatusSuccessful,
	"REFUND":     provider.StatusRefund,
	"CHARGEBACK": provider.StatusRefund,
}

// Provider implements provider.PaymentProvider for the Platon gateway.
type Provider struct {
	cfg       provider.ConfigSource
	store     provider.TransactionStore
	processor provider.Processor
	logger    *slog.Logger
	validate  *validator.Validate
}

// New builds a Platon provider. The store and processor must be safe for
// concurrent use; the provider itself holds no mutable state.
func New(cfg provider.ConfigSource, store provider.TransactionStore, proc provider.Processor, logger *slog.Logger) *Provider {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Provider{cfg: cfg, store: store, processor: proc, logger: logger, validate: v}
}

// Name returns the registry key for this provider.
func (p *Provider) Name() string { return Name }

// IsValid reports whether the merchant id and password are both configured.
func (p *Provider) IsValid() bool {
	return p.cfg.Config("merchant") != "" && p.cfg.Config("password") != ""
}

// CreatePayment assembles and signs an outbound payment request. The hook,
// when given, runs before the transaction record is created so its changes
// to the payment intent end up in the signed payload. A transaction-store
// failure aborts the whole call; no unsigned request is ever returned.
func (p *Provider) CreatePayment(ctx context.Context, order *provider.Order, hook provider.Hook, opts provider.CreateOptions) (*provider.Action, error) {
	payment := &order.Payment
	if hook != nil {
		hook(payment, p)
	}
	client := payment.Client

	amount := decimal.NewFromFloat(payment.Amount).Round(2)
	req := Request{
		PaymentMethod: paymentMethodCard,
		ReturnURL:     payment.ReturnURL,
		Language:      payment.Language,
		Data: AmountData{
			Amount:      amount.StringFixed(2),
			Currency:    payment.Currency,
			Description: truncate(payment.Description, maxDescriptionLen),
		},
		Email:     client.Email,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Phone:     client.Phone,
	}

	txnID, err := p.store.CreateTransaction(ctx, order, payment, opts)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	req.Order = txnID

	if payment.CardID == provider.NoStoredCard {
		req.Data.Recurring = recurringMarker
	}

	fields, err := p.Sign(req)
	if err != nil {
		return nil, err
	}

	return &provider.Action{
		Provider: Name,
		Kind:     provider.ActionOpen,
		URL:      publicURL,
		Method:   provider.MethodPost,
		Fields:   fields,
	}, nil
}

// truncate cuts s to at most limit characters with no truncation marker.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
