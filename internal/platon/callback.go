package platon

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/platon-pay/platon_pay/internal/provider"
)

// callbackPayload is the untrusted body of a gateway status callback.
type callbackPayload struct {
	Sign   string `json:"sign" form:"sign" validate:"required"`
	Status string `json:"status" form:"status" validate:"required"`
	ID     string `json:"id" form:"id" validate:"required"`
	Order  string `json:"order" form:"order" validate:"required"`
	Amount string `json:"amount" form:"amount" validate:"required"`

	Email   string `json:"email" form:"email"`
	Card    string `json:"card" form:"card"`
	RCToken string `json:"rc_token" form:"rc_token"`
	RCID    string `json:"rc_id" form:"rc_id"`
}

type callbackError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Callback handles the gateway's asynchronous payment-status webhook.
// Validation failures answer 400 with field-level errors, signature
// mismatches answer 403 with a generic message, and unknown statuses are
// acknowledged with an empty 200 so the gateway stops redelivering.
func (p *Provider) Callback(c *fiber.Ctx) error {
	// Malformed and fraudulent callbacks are security-relevant, so snapshot
	// the request before any validation can reject it.
	p.logger.Debug("platon callback received",
		"ip", c.IP(),
		"uri", c.OriginalURL(),
		"query", string(c.Request().URI().QueryString()),
		"headers", c.GetReqHeaders(),
		"cookies", c.Get(fiber.HeaderCookie),
		"body", string(c.Body()),
	)

	var payload callbackPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(callbackError{
			Message: "The given data was invalid.",
			Errors:  map[string][]string{"body": {err.Error()}},
		})
	}

	if err := p.validate.Struct(&payload); err != nil {
		fieldErrs := make(map[string][]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs[fe.Field()] = append(fieldErrs[fe.Field()], fmt.Sprintf("The %s field is required.", fe.Field()))
			}
		}
		return c.Status(http.StatusBadRequest).JSON(callbackError{
			Message: "The given data was invalid.",
			Errors:  fieldErrs,
		})
	}

	if p.sign2(&payload) != payload.Sign {
		return c.Status(http.StatusForbidden).JSON(callbackError{Message: "Invalid signature"})
	}

	status, known := statuses[payload.Status]
	if !known {
		p.logger.Info("platon callback ignored", "status", payload.Status, "order", payload.Order)
		return c.Status(http.StatusOK).Send(nil)
	}

	// The gateway sends the amount as a decimal string; a malformed value
	// degrades to zero the way the historical implementation cast it.
	amount, _ := strconv.ParseFloat(payload.Amount, 64)

	invoice := &provider.Invoice{
		Provider:      Name,
		GatewayID:     payload.ID,
		TransactionID: payload.Order,
		Type:          provider.TypePayment,
		Status:        status,
		Amount:        amount,
	}
	if payload.RCToken != "" {
		invoice.Card = &provider.CardToken{
			Card:  payload.Card,
			Token: payload.RCToken,
			Data:  map[string]string{"rc_id": payload.RCID},
		}
	}

	if err := p.processor.Process(c.UserContext(), invoice); err != nil {
		return fmt.Errorf("process invoice: %w", err)
	}

	return c.Status(http.StatusOK).Send(nil)
}
