package controllers_test

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestMeetingRequiresCurrentMessage(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/scheduling/suggest", "", fiber.Map{
		"chatHistory": []fiber.Map{},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSuggestMeetingExplicitRequest(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/scheduling/suggest", "", fiber.Map{
		"currentMessage": "Can we schedule a technical interview for the backend role?",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["shouldSuggest"])

	analysis := data["analysis"].(map[string]interface{})
	assert.Equal(t, "interview", analysis["intent"])
	assert.Equal(t, 0.9, analysis["confidence"])
	assert.Equal(t, float64(60), analysis["suggestedDuration"])

	slots := data["suggestedSlots"].([]interface{})
	assert.LessOrEqual(t, len(slots), 5)
	assert.NotEmpty(t, data["agenda"])
	assert.NotEmpty(t, data["autoMessage"])
}

func TestSuggestMeetingLowConfidence(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/scheduling/suggest", "", fiber.Map{
		"currentMessage": "hi",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["shouldSuggest"])
}

func TestScheduleMeetingHappyPath(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/scheduling/slots", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	slots := body["data"].(map[string]interface{})["slots"].([]interface{})
	require.NotEmpty(t, slots)
	slot := slots[0].(map[string]interface{})["datetime"].(string)

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/scheduling/schedule", "", fiber.Map{
		"name":        "Visitor",
		"email":       "visitor@example.com",
		"slot":        slot,
		"meetingType": "collaboration",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["meetingId"].(string), "meet_"))
	assert.Equal(t, float64(30), data["duration"])

	event := data["calendarEvent"].(map[string]interface{})
	assert.Equal(t, slot, event["start"])
}

func TestScheduleMeetingValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/scheduling/schedule", "", fiber.Map{
		"name": "Visitor",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/scheduling/schedule", "", fiber.Map{
		"name":        "Visitor",
		"email":       "visitor@example.com",
		"slot":        "2030-01-01T09:00:00Z",
		"meetingType": "sales-pitch",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
