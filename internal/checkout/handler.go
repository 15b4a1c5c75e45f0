package checkout

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// Handler exposes the payment-initiation HTTP endpoint.
type Handler struct {
	registry *provider.Registry
}

// NewHandler builds a checkout HTTP handler.
func NewHandler(registry *provider.Registry) *Handler {
	return &Handler{registry: registry}
}

type createRequest struct {
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	ReturnURL   string  `json:"return_url"`
	Language    string  `json:"lang"`
	CardID      int     `json:"card_id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       string  `json:"phone"`
}

// Create builds a signed payment action for the provider named in the path.
func (h *Handler) Create(c *fiber.Ctx) error {
	prov, err := h.registry.Resolve(c.Params("provider"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.OrderID == "" {
		return fiber.NewError(http.StatusBadRequest, "order_id is required")
	}
	if req.Amount <= 0 {
		return fiber.NewError(http.StatusBadRequest, "amount must be positive")
	}

	order := &provider.Order{
		ID: req.OrderID,
		Payment: provider.Payment{
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
			ReturnURL:   req.ReturnURL,
			Language:    req.Language,
			CardID:      req.CardID,
			Client: provider.Client{
				Email:     req.Email,
				FirstName: req.FirstName,
				LastName:  req.LastName,
				Phone:     req.Phone,
			},
		},
	}

	action, err := prov.CreatePayment(c.UserContext(), order, nil, nil)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(action)
}
