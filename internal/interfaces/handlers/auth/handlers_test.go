package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	authsvc "ledger-backend/internal/application/auth"
	"ledger-backend/internal/domain"
	"ledger-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthHandlers(t *testing.T) (*Handlers, *gorm.DB, *redis.Client) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	h := &Handlers{
		Service: &authsvc.Service{DB: db},
		Rdb:     rdb,
		Config: middleware.SessionConfig{
			AllowCrossSiteDev: false,
			IsProduction:      false,
		},
	}
	return h, db, rdb
}

func postBody(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}, string) {
	t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var body map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body, resp.Header.Get("Set-Cookie")
}

func TestRegister_Created(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/register", h.Register)

	code, body, _ := postBody(t, app, "/register", map[string]string{
		"username": "alice", "password": "hunter2password1",
	})
	assert.Equal(t, 201, code)
	assert.Equal(t, "success", body["status"])

	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/register", h.Register)

	code, _, _ := postBody(t, app, "/register", map[string]string{
		"username": "alice", "password": "hunter2password1",
	})
	require.Equal(t, 201, code)

	code, _, _ = postBody(t, app, "/register", map[string]string{
		"username": "alice", "password": "otherpassword9",
	})
	assert.Equal(t, 409, code)

	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.Equal(t, int64(1), count, "user count must not increase")
}

func TestRegister_MissingFields(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/register", h.Register)

	code, _, _ := postBody(t, app, "/register", map[string]string{"username": "alice"})
	assert.Equal(t, 400, code)
}

func TestLogin_SetsSessionCookieAndTracksSession(t *testing.T) {
	h, _, rdb := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)

	code, _, _ := postBody(t, app, "/register", map[string]string{
		"username": "alice", "password": "hunter2password1",
	})
	require.Equal(t, 201, code)

	code, body, cookie := postBody(t, app, "/login", map[string]string{
		"username": "alice", "password": "hunter2password1",
	})
	assert.Equal(t, 200, code)
	assert.Contains(t, cookie, "ledger.sid=")

	data, _ := body["data"].(map[string]interface{})
	user, _ := data["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "alice", user["username"])
	userID, _ := user["user_id"].(string)
	require.NotEmpty(t, userID)

	members, err := rdb.SMembers(context.Background(), "user_sessions:"+userID).Result()
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestLogin_BadCredentials(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)

	code, _, _ := postBody(t, app, "/register", map[string]string{
		"username": "alice", "password": "hunter2password1",
	})
	require.Equal(t, 201, code)

	code, _, _ = postBody(t, app, "/login", map[string]string{
		"username": "alice", "password": "wrongpassword1",
	})
	assert.Equal(t, 401, code)

	code, _, _ = postBody(t, app, "/login", map[string]string{
		"username": "nobody", "password": "hunter2password1",
	})
	assert.Equal(t, 401, code)
}

func TestLogout_ClearsSession(t *testing.T) {
	h, _, rdb := setupAuthHandlers(t)
	userID := "00000000-0000-0000-0000-000000000001"
	sessionID := "test-session-id"
	require.NoError(t, rdb.SAdd(context.Background(), "user_sessions:"+userID, sessionID).Err())
	require.NoError(t, rdb.Set(context.Background(), "session:"+sessionID, `{"user":{"user_id":"`+userID+`"}}`, 0).Err())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session_id", sessionID)
		c.Locals("user", map[string]interface{}{"user_id": userID, "username": "alice"})
		return c.Next()
	})
	app.Post("/logout", middleware.RequireAuth(), h.Logout)

	req := httptest.NewRequest("POST", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, strings.Contains(resp.Header.Get("Set-Cookie"), "ledger.sid="))

	exists, err := rdb.Exists(context.Background(), "session:"+sessionID).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists, "session key deleted")

	members, err := rdb.SMembers(context.Background(), "user_sessions:"+userID).Result()
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestLogout_Unauthenticated(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/logout", middleware.RequireAuth(), h.Logout)

	req := httptest.NewRequest("POST", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
