package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopsync/internal/middleware"
	"shopsync/internal/models"
	"shopsync/internal/repositories"
	"shopsync/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// setupGatedApp builds a Fiber app with a single admin-gated route and an
// identity provider backed by the in-memory user repository.
func setupGatedApp(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()

	userRepo := repositories.NewMemoryUserRepository()
	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	gate := middleware.NewAuthGate(authService)

	app := fiber.New()
	app.Post("/admin-action", gate.Authenticated(), gate.AdminOnly(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app, authService
}

// registerAndLogin creates a user and returns its id and a fresh token.
func registerAndLogin(t *testing.T, authService *services.AuthService, username string) (string, string) {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	err := authService.RegisterUser(user)
	assert.NoError(t, err)

	token, err := authService.LoginUser(username, "password123")
	assert.NoError(t, err)
	return user.ID, token
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body map[string]interface{}
	err := json.NewDecoder(resp.Body).Decode(&body)
	assert.NoError(t, err)
	resp.Body.Close()
	msg, _ := body["error"].(string)
	return msg
}

func TestAuthGate_MissingOrMalformedHeader(t *testing.T) {
	app, _ := setupGatedApp(t)

	// No Authorization header at all
	req := httptest.NewRequest(http.MethodPost, "/admin-action", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No token", errorBody(t, resp))

	// Wrong scheme
	req = httptest.NewRequest(http.MethodPost, "/admin-action", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No token", errorBody(t, resp))
}

func TestAuthGate_InvalidToken(t *testing.T) {
	app, _ := setupGatedApp(t)

	req := httptest.NewRequest(http.MethodPost, "/admin-action", nil)
	req.Header.Set("Authorization", "Bearer this-is-not-a-token")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", errorBody(t, resp))
}

func TestAuthGate_NonAdminForbidden(t *testing.T) {
	app, authService := setupGatedApp(t)

	_, token := registerAndLogin(t, authService, "regular")

	req := httptest.NewRequest(http.MethodPost, "/admin-action", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Admin only", errorBody(t, resp))
}

func TestAuthGate_AdminClaimInToken(t *testing.T) {
	app, authService := setupGatedApp(t)

	userID, _ := registerAndLogin(t, authService, "boss")
	err := authService.SetAdminClaim(userID)
	assert.NoError(t, err)

	// A token minted after the grant embeds the claim directly.
	token, err := authService.LoginUser("boss", "password123")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-action", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthGate_AdminViaCustomClaimsFallback(t *testing.T) {
	app, authService := setupGatedApp(t)

	// Token minted before the grant does not assert admin; the gate must fall
	// back to the persisted custom claims.
	userID, oldToken := registerAndLogin(t, authService, "promoted")
	err := authService.SetAdminClaim(userID)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-action", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAllowAllGate(t *testing.T) {
	gate := middleware.NewAllowAllGate()

	app := fiber.New()
	app.Post("/admin-action", gate.Authenticated(), gate.AdminOnly(), func(c *fiber.Ctx) error {
		subjectID, _ := c.Locals(middleware.LocalSubjectID).(string)
		return c.JSON(fiber.Map{"subject": subjectID})
	})

	// No credentials at all, still admitted with the synthetic identity.
	req := httptest.NewRequest(http.MethodPost, "/admin-action", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&body)
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "local-dev", body["subject"])
}
