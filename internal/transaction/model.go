package transaction

import (
	"time"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// Transaction is the durable record created for each outbound payment
// request. Its ID is echoed back by gateways as the order reference, which
// is how callbacks find their way home.
type Transaction struct {
	ID          string
	OrderID     string
	Provider    string
	Type        string
	Amount      float64
	Currency    string
	Description string
	Status      provider.Status
	GatewayID   string
	Card        *provider.CardToken
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
