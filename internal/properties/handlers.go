package properties

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

// POST /api/v1/properties/create
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		Title         string      `json:"title"`
		Description   *string     `json:"description"`
		LocationCity  string      `json:"location_city"`
		LocationState string      `json:"location_state"`
		TotalTokens   int64       `json:"total_tokens"`
		PricePerToken json.Number `json:"price_per_token"`
	}
	if err := c.BodyParser(&body); err != nil || body.Title == "" || body.PricePerToken == "" {
		return response.Error(c, "title, total_tokens and price_per_token are required", 400, nil)
	}
	price, err := decimal.NewFromString(body.PricePerToken.String())
	if err != nil {
		return response.Error(c, "Invalid price_per_token format", 400, nil)
	}
	sellerID := middleware.GetUserID(c)
	if sellerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	property, err := h.Service.Create(c.Context(), sellerID, CreateInput{
		Title:         body.Title,
		Description:   body.Description,
		LocationCity:  body.LocationCity,
		LocationState: body.LocationState,
		TotalTokens:   body.TotalTokens,
		PricePerToken: price,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Property created successfully", property, nil)
}

// GET /api/v1/properties/get-all
func (h *Handlers) GetAll(c *fiber.Ctx) error {
	props, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Properties fetched successfully", props, nil)
}

// GET /api/v1/properties/get-active
func (h *Handlers) GetActive(c *fiber.Ctx) error {
	props, err := h.Service.GetActive(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Active properties fetched successfully", props, nil)
}

// GET /api/v1/properties/:id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for property id", 400, nil)
	}
	property, err := h.Service.GetByID(c.Context(), propertyID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Property fetched successfully", property, nil)
}

// PATCH /api/v1/properties/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for property id", 400, nil)
	}
	var body struct {
		Title         *string      `json:"title"`
		Description   *string      `json:"description"`
		LocationCity  *string      `json:"location_city"`
		LocationState *string      `json:"location_state"`
		TotalTokens   *int64       `json:"total_tokens"`
		PricePerToken *json.Number `json:"price_per_token"`
		Status        *string      `json:"status"`
		Verified      *bool        `json:"verified"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	actorID := middleware.GetUserID(c)
	if actorID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	in := UpdateInput{
		Title:         body.Title,
		Description:   body.Description,
		LocationCity:  body.LocationCity,
		LocationState: body.LocationState,
		TotalTokens:   body.TotalTokens,
		Status:        body.Status,
		Verified:      body.Verified,
	}
	if body.PricePerToken != nil {
		price, err := decimal.NewFromString(body.PricePerToken.String())
		if err != nil {
			return response.Error(c, "Invalid price_per_token format", 400, nil)
		}
		in.PricePerToken = &price
	}

	property, err := h.Service.Update(c.Context(), actorID, propertyID, in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Property updated successfully", property, nil)
}

// PATCH /api/v1/properties/:id/verify
func (h *Handlers) Verify(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for property id", 400, nil)
	}
	var body struct {
		Verified *bool `json:"verified"`
	}
	if err := c.BodyParser(&body); err != nil || body.Verified == nil {
		return response.Error(c, "verified is required", 400, nil)
	}
	actorID := middleware.GetUserID(c)
	if actorID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	property, err := h.Service.SetVerified(c.Context(), actorID, propertyID, *body.Verified)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Property verification updated", property, nil)
}
