package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/routes"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBCounter int64

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		UploadsDir: "uploads-test",
	}
}

// setupTestApp builds the full application against a fresh in-memory
// database. Caching and the LLM stay unconfigured so external calls are
// never attempted.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, utils.MigrateModels(db))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return utils.Fail(c, code, message)
		},
	})
	routes.SetupRoutes(app, db, nil, testConfig(), zerolog.Nop())
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

// registerWithRole registers a user and promotes it directly in the
// database; tokens carry only the user id so no re-login is needed.
func registerWithRole(t *testing.T, app *fiber.App, db *gorm.DB, name, email, role string) string {
	t.Helper()

	token := registerUser(t, app, name, email)
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", email).
		Update("role", role).Error)
	return token
}

func dataField(t *testing.T, body map[string]interface{}, key string) map[string]interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "missing data envelope: %v", body)
	field, ok := data[key].(map[string]interface{})
	require.True(t, ok, "missing %s in data: %v", key, data)
	return field
}
