package wallet

import (
	"encoding/json"

	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/models"
	"brickvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/wallet/deposit
func (h *Handlers) Deposit(c *fiber.Ctx) error {
	var body struct {
		Amount json.Number `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil || body.Amount == "" {
		return response.Error(c, "amount is required", 400, nil)
	}
	amount, err := decimal.NewFromString(body.Amount.String())
	if err != nil {
		return response.Error(c, "Invalid amount format", 400, nil)
	}
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	balance, err := h.Service.Deposit(c.Context(), userID, amount, models.DepositMeta{Method: "manual"})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Deposit successful", fiber.Map{"balance": balance}, nil)
}

// GET /api/v1/wallet/balance
func (h *Handlers) Balance(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	w, err := h.Service.Balance(c.Context(), userID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Wallet fetched successfully", w, nil)
}

// GET /api/v1/wallet/transactions
func (h *Handlers) Transactions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	txs, err := h.Service.Transactions(c.Context(), userID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Transactions fetched successfully", txs, nil)
}
