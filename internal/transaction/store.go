package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// Store implements provider.TransactionStore for a single provider: it
// registers a pending transaction for an order and hands back the id the
// provider embeds in the signed payload.
type Store struct {
	repo     Repository
	provider string
}

// NewStore builds a transaction store scoped to the named provider.
func NewStore(repo Repository, providerName string) *Store {
	return &Store{repo: repo, provider: providerName}
}

// CreateTransaction durably records a pending transaction and returns its
// identifier. The record must exist before the caller signs the request,
// since gateways echo the id back in callbacks.
func (s *Store) CreateTransaction(ctx context.Context, order *provider.Order, payment *provider.Payment, _ provider.CreateOptions) (string, error) {
	now := time.Now().UTC()
	txn := &Transaction{
		ID:          uuid.NewString(),
		OrderID:     order.ID,
		Provider:    s.provider,
		Type:        provider.TypePayment,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Description: payment.Description,
		Status:      provider.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, txn); err != nil {
		return "", fmt.Errorf("create transaction for order %s: %w", order.ID, err)
	}
	return txn.ID, nil
}
