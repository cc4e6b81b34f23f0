package distribution

import (
	"encoding/json"

	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/distributions/distribute
func (h *Handlers) Distribute(c *fiber.Ctx) error {
	var body struct {
		PropertyID string      `json:"property_id"`
		Amount     json.Number `json:"amount"`
		Notes      *string     `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil || body.PropertyID == "" || body.Amount == "" {
		return response.Error(c, "property_id and amount are required", 400, nil)
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for property_id", 400, nil)
	}
	amount, err := decimal.NewFromString(body.Amount.String())
	if err != nil {
		return response.Error(c, "Invalid amount format", 400, nil)
	}
	initiatorID := middleware.GetUserID(c)
	if initiatorID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.Service.DistributeProfit(c.Context(), initiatorID, propertyID, amount, body.Notes)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Profit distributed successfully", result, nil)
}

// GET /api/v1/distributions/property/:id
func (h *Handlers) ForProperty(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for property id", 400, nil)
	}
	dists, err := h.Service.ForProperty(c.Context(), propertyID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Distributions fetched successfully", dists, nil)
}
