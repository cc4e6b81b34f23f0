package auth

import (
	"context"

	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/pkg/response"
	"brickvest-backend/internal/roles"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Service *Service
	Roles   *roles.Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	user, err := h.Service.Register(c.Context(), in)
	if err != nil {
		switch err {
		case ErrInvalidInput:
			return response.Error(c, err.Error(), 400, nil)
		case ErrEmailTaken:
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "User registered successfully", fiber.Map{
		"user_id":  user.UserID,
		"fullname": user.Fullname,
		"email":    user.Email,
	}, nil)
}

// POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in LoginInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	user, err := h.Service.Login(c.Context(), in)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), 400, nil)
		case ErrInvalidEmail, ErrIncorrectPassword:
			return response.Unauthorized(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	grantList, err := h.Roles.RolesOf(c.Context(), user.UserID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	sid := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.UserID.String(),
		Fullname: user.Fullname,
		Email:    user.Email,
		Roles:    grantList,
	})

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sid
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{
		"user_id":  user.UserID,
		"fullname": user.Fullname,
		"email":    user.Email,
		"roles":    grantList,
	}, nil)
}

// GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, ErrNotAuthenticated.Error())
	}
	return response.Success(c, "Authenticated", user, nil)
}

// DELETE /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sid := middleware.GetSessionID(c)
	if sid != "" && h.Rdb != nil {
		_ = h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sid).Err()
	}
	middleware.DestroySession(c)
	c.Locals("session_id", "")

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out", nil, nil)
}
