package transaction

import (
	"context"
	"errors"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// ErrNotFound indicates the transaction does not exist.
var ErrNotFound = errors.New("transaction not found")

// Repository persists payment transactions.
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	FindByID(ctx context.Context, id string) (*Transaction, error)
	// UpdateStatus applies a callback outcome: the mapped status, the
	// gateway's own transaction id and, when present, a stored card token.
	UpdateStatus(ctx context.Context, id string, status provider.Status, gatewayID string, card *provider.CardToken) error
}
