package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// PostgresRepository persists transactions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a Postgres-backed Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new transaction row.
func (r *PostgresRepository) Create(ctx context.Context, txn *Transaction) error {
	const query = `
        INSERT INTO transactions
            (id, order_id, provider, type, amount, currency, description, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		txn.ID, txn.OrderID, txn.Provider, txn.Type, txn.Amount, txn.Currency,
		txn.Description, int(txn.Status), txn.CreatedAt, txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// FindByID loads a transaction by its host-assigned id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Transaction, error) {
	const query = `
        SELECT id, order_id, provider, type, amount, currency, description,
               status, COALESCE(gateway_id, ''), card, created_at, updated_at
        FROM transactions
        WHERE id = $1`

	var (
		txn      Transaction
		status   int
		cardJSON []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&txn.ID, &txn.OrderID, &txn.Provider, &txn.Type, &txn.Amount,
		&txn.Currency, &txn.Description, &status, &cardJSON,
		&txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	txn.Status = provider.Status(status)
	if len(cardJSON) > 0 {
		var card provider.CardToken
		if err := json.Unmarshal(cardJSON, &card); err != nil {
			return nil, fmt.Errorf("decode card token: %w", err)
		}
		txn.Card = &card
	}
	return &txn, nil
}

// UpdateStatus applies a callback outcome to the stored row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status provider.Status, gatewayID string, card *provider.CardToken) error {
	var cardJSON []byte
	if card != nil {
		b, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("encode card token: %w", err)
		}
		cardJSON = b
	}

	const query = `
        UPDATE transactions
        SET status = $2,
            gateway_id = $3,
            card = COALESCE($4, card),
            updated_at = $5
        WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, int(status), gatewayID, cardJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
