package provider

// Status is the host-side transaction status a gateway outcome maps to.
type Status int

const (
	StatusPending Status = iota + 1
	StatusSuccessful
	StatusRefund
	StatusFailed
)

// String returns a stable lowercase name for logging and persistence.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccessful:
		return "successful"
	case StatusRefund:
		return "refund"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TypePayment is the transaction type carried by invoices built from
// payment callbacks.
const TypePayment = "payment"

// NoStoredCard is the sentinel card reference meaning no card is on file;
// gateways treat such payments as tokenizable first charges.
const NoStoredCard = 0

// Client identifies the paying customer as known to the host.
type Client struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// Payment is the payment intent attached to an order. Hooks may mutate it
// before the provider signs the outbound request.
type Payment struct {
	Amount      float64
	Currency    string
	Description string
	ReturnURL   string
	Language    string
	CardID      int
	Client      Client
}

// Order is the host order a payment is initiated for.
type Order struct {
	ID      string
	Payment Payment
}

// Action method and kind values.
const (
	MethodPost = "POST"
	MethodGet  = "GET"

	// ActionOpen instructs the caller to redirect or auto-submit the
	// browser to the action URL.
	ActionOpen = "open"
)

// Action describes how the caller should continue a payment flow: where to
// send the customer and with which signed fields.
type Action struct {
	Provider string            `json:"provider"`
	Kind     string            `json:"kind"`
	URL      string            `json:"url"`
	Method   string            `json:"method"`
	Fields   map[string]string `json:"fields"`
}

// CardToken carries gateway tokenization data attached to an invoice when
// the gateway stored a card for recurring use.
type CardToken struct {
	Card  string
	Token string
	Data  map[string]string
}

// Invoice is the normalized payment-status event a provider hands to the
// host's transaction processor.
type Invoice struct {
	Provider      string
	GatewayID     string
	TransactionID string
	Type          string
	Status        Status
	Amount        float64
	Card          *CardToken
}
