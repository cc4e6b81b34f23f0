package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brickvest-backend/internal/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionTest(t *testing.T) (*fiber.App, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	return app, mr
}

func sessionCookie(sid string) *http.Cookie {
	return &http.Cookie{Name: SessionCookieName, Value: sid}
}

func TestSession_LoginPersistsUserToRedis(t *testing.T) {
	app, mr := setupSessionTest(t)
	userID := uuid.New().String()

	app.Post("/login", func(c *fiber.Ctx) error {
		sid := RegenerateSessionID(c)
		SetSessionUser(c, SessionUser{
			UserID:   userID,
			Fullname: "Jane Doe",
			Email:    "jane@example.com",
			Roles:    []string{constants.UserRole},
		})
		c.Cookie(&fiber.Cookie{Name: SessionCookieName, Value: sid, Path: "/"})
		return c.SendStatus(200)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			sid = c.Value
		}
	}
	require.NotEmpty(t, sid)

	stored, err := mr.Get(SessionRedisPrefix + sid)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stored), &data))
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, userID, user["user_id"])
	assert.Equal(t, "jane@example.com", user["email"])
}

func TestSession_CookieRestoresUser(t *testing.T) {
	app, mr := setupSessionTest(t)
	userID := uuid.New()
	sid := uuid.New().String()

	b, _ := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{
			"user_id":  userID.String(),
			"fullname": "Jane Doe",
			"email":    "jane@example.com",
			"roles":    []string{constants.UserRole, constants.VerifiedSeller},
		},
	})
	require.NoError(t, mr.Set(SessionRedisPrefix+sid, string(b)))

	app.Get("/me", RequireAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": GetUserID(c).String(),
			"roles":   GetUserRoles(c),
		})
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(sessionCookie(sid))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		UserID string   `json:"user_id"`
		Roles  []string `json:"roles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID.String(), body.UserID)
	assert.ElementsMatch(t, []string{constants.UserRole, constants.VerifiedSeller}, body.Roles)
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	app, _ := setupSessionTest(t)
	app.Get("/me", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_RejectsUnknownSessionID(t *testing.T) {
	app, _ := setupSessionTest(t)
	app.Get("/me", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(sessionCookie(uuid.New().String()))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthorizePermission(t *testing.T) {
	app, mr := setupSessionTest(t)
	sid := uuid.New().String()

	b, _ := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{
			"user_id": uuid.New().String(),
			"roles":   []string{constants.UserRole},
		},
	})
	require.NoError(t, mr.Set(SessionRedisPrefix+sid, string(b)))

	app.Post("/verify", RequireAuth(), AuthorizePermission(constants.VerifyProperty), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	app.Post("/buy", RequireAuth(), AuthorizePermission(constants.BuyTokens), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	req := httptest.NewRequest("POST", "/verify", nil)
	req.AddCookie(sessionCookie(sid))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("POST", "/buy", nil)
	req.AddCookie(sessionCookie(sid))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
