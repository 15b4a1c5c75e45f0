package transaction

import (
	"context"
	"sync"
	"time"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// MemoryRepository is an in-memory Repository used in development mode and
// tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	txns map[string]*Transaction
}

// NewMemoryRepository builds an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{txns: make(map[string]*Transaction)}
}

// Create stores a copy of the transaction.
func (r *MemoryRepository) Create(_ context.Context, txn *Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.txns[txn.ID] = &cp
	return nil
}

// FindByID returns a copy of the stored transaction.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txn, ok := r.txns[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *txn
	return &cp, nil
}

// UpdateStatus applies a callback outcome to the stored transaction.
func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status provider.Status, gatewayID string, card *provider.CardToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[id]
	if !ok {
		return ErrNotFound
	}
	txn.Status = status
	txn.GatewayID = gatewayID
	if card != nil {
		cp := *card
		txn.Card = &cp
	}
	txn.UpdatedAt = time.Now().UTC()
	return nil
}
