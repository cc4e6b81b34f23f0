package roles

import (
	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// PATCH /api/v1/roles/assign
func (h *Handlers) AssignRole(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.Role == "" {
		return response.Error(c, "user_id and role are required", 400, nil)
	}
	targetID, err := uuid.Parse(body.UserID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for user_id", 400, nil)
	}
	actorID := middleware.GetUserID(c)
	if actorID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.Service.AssignRole(c.Context(), actorID, targetID, body.Role); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Role assigned successfully", fiber.Map{
		"user_id": targetID,
		"role":    body.Role,
	}, nil)
}

// PATCH /api/v1/roles/revoke
func (h *Handlers) RevokeRole(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.Role == "" {
		return response.Error(c, "user_id and role are required", 400, nil)
	}
	targetID, err := uuid.Parse(body.UserID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for user_id", 400, nil)
	}
	actorID := middleware.GetUserID(c)
	if actorID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.Service.RevokeRole(c.Context(), actorID, targetID, body.Role); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Role revoked successfully", fiber.Map{
		"user_id": targetID,
		"role":    body.Role,
	}, nil)
}

// GET /api/v1/roles/my-roles
func (h *Handlers) MyRoles(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	roles, err := h.Service.RolesOf(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Roles fetched successfully", fiber.Map{"roles": roles}, nil)
}
