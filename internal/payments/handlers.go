package payments

import (
	"encoding/json"

	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Creator PaymentIntentCreator
}

// POST /api/v1/wallet/topup-intent creates a Stripe PaymentIntent whose
// metadata carries the user and deposit amount; the webhook does the credit.
func (h *Handlers) CreateTopUpIntent(c *fiber.Ctx) error {
	var body struct {
		Amount json.Number `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil || body.Amount == "" {
		return response.Error(c, "amount is required", 400, nil)
	}
	amount, err := decimal.NewFromString(body.Amount.String())
	if err != nil || !amount.IsPositive() {
		return response.Error(c, "Amount must be a positive number", 400, nil)
	}
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if h.Creator == nil {
		return response.Error(c, "Stripe not configured", 500, nil)
	}

	amountCents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	pi, err := h.Creator.Create(amountCents, "usd", map[string]string{
		"user_id":        userID.String(),
		"deposit_amount": amount.StringFixed(2),
	})
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Top-up intent created", pi, nil)
}
