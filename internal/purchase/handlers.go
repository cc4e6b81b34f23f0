package purchase

import (
	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/purchases/buy-tokens
func (h *Handlers) BuyTokens(c *fiber.Ctx) error {
	var body struct {
		PropertyID string `json:"property_id"`
		Tokens     int64  `json:"tokens"`
	}
	if err := c.BodyParser(&body); err != nil || body.PropertyID == "" {
		return response.Error(c, "property_id and tokens are required", 400, nil)
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for property_id", 400, nil)
	}
	buyerID := middleware.GetUserID(c)
	if buyerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	receipt, err := h.Service.PurchaseTokens(c.Context(), buyerID, propertyID, body.Tokens)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Tokens purchased successfully", receipt, nil)
}

// GET /api/v1/purchases/my-purchases
func (h *Handlers) MyPurchases(c *fiber.Ctx) error {
	buyerID := middleware.GetUserID(c)
	if buyerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	purchases, err := h.Service.MyPurchases(c.Context(), buyerID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Purchases fetched successfully", purchases, nil)
}
