package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/platon-pay/platon_pay/internal/provider"
	"github.com/platon-pay/platon_pay/internal/transaction"
)

const dedupPrefix = "callback:v1:"

// Processor applies provider invoices to stored transactions. Gateways may
// deliver the same callback more than once, so a Redis SETNX guard keyed by
// provider, gateway id and status collapses duplicates before any write.
type Processor struct {
	repo   transaction.Repository
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New builds a processor. cache may be nil, in which case deduplication is
// skipped (development mode).
func New(repo transaction.Repository, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Processor {
	return &Processor{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Process persists the state transition an invoice describes. Duplicate
// invoices are dropped silently; a storage failure releases the dedup
// reservation so the gateway's retry can succeed.
func (p *Processor) Process(ctx context.Context, invoice *provider.Invoice) error {
	key := dedupPrefix + invoice.Provider + ":" + invoice.GatewayID + ":" + invoice.Status.String()

	if p.cache != nil {
		reserved, err := p.cache.SetNX(ctx, key, 1, p.ttl).Result()
		if err != nil {
			return fmt.Errorf("dedup reservation: %w", err)
		}
		if !reserved {
			p.logger.Info("duplicate callback dropped",
				"provider", invoice.Provider,
				"gateway_id", invoice.GatewayID,
				"status", invoice.Status.String(),
			)
			return nil
		}
	}

	if err := p.repo.UpdateStatus(ctx, invoice.TransactionID, invoice.Status, invoice.GatewayID, invoice.Card); err != nil {
		if p.cache != nil {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			p.cache.Del(cleanupCtx, key) // best effort cleanup
		}
		return fmt.Errorf("apply invoice to transaction %s: %w", invoice.TransactionID, err)
	}

	p.logger.Info("invoice processed",
		"provider", invoice.Provider,
		"transaction_id", invoice.TransactionID,
		"gateway_id", invoice.GatewayID,
		"status", invoice.Status.String(),
		"amount", invoice.Amount,
		"card_token", invoice.Card != nil,
	)
	return nil
}
