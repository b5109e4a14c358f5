package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectInquiryFlow(t *testing.T) {
	app, db := setupTestApp(t)
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")

	// Public submission, no auth
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/projects", "", fiber.Map{
		"name":        "Client",
		"email":       "client@example.com",
		"description": "Build me a storefront",
		"budget":      "$5k",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	project := dataField(t, body, "project")
	assert.Equal(t, "pending", project["status"])
	projectID := fmt.Sprintf("%v", project["id"])

	// Listing is admin-only
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/projects?status=pending", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])

	// Free-form transition
	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/projects/"+projectID+"/status", admin, fiber.Map{
		"status": "completed",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", dataField(t, body, "project")["status"])

	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/projects/"+projectID+"/status", admin, fiber.Map{
		"status": "abandoned",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProjectSubmissionValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/projects", "", fiber.Map{
		"name": "No Email",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
