package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates course X -> section Y -> chapter Z with two scenes
// and returns the created ids.
func buildTree(t *testing.T, app *fiber.App, admin string) (courseSlug string, sectionID, chapterID float64) {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/courses", admin, fiber.Map{
		"title": "Course X",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	course := dataField(t, body, "course")
	courseSlug = course["slug"].(string)

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/sections", admin, fiber.Map{
		"title":    "Section Y",
		"slug":     "section-y",
		"order":    1,
		"courseId": course["id"],
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	section := dataField(t, body, "section")
	sectionID = section["id"].(float64)

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/chapters", admin, fiber.Map{
		"title":     "Chapter Z",
		"slug":      "chapter-z",
		"order":     1,
		"sectionId": section["id"],
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	chapter := dataField(t, body, "chapter")
	chapterID = chapter["id"].(float64)

	for order, title := range map[int]string{2: "Second Scene", 1: "First Scene"} {
		resp, _ = doJSON(t, app, fiber.MethodPost, "/api/scenes", admin, fiber.Map{
			"title":        title,
			"chapterId":    chapter["id"],
			"dialogue":     "narration",
			"drawFunction": "ctx.fillRect(0,0,10,10)",
			"order":        order,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	return courseSlug, sectionID, chapterID
}

func TestHierarchyNavigationAndOrdering(t *testing.T) {
	app, db := setupTestApp(t)
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")

	courseSlug, _, _ := buildTree(t, app, admin)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/courses/"+courseSlug+"/sections", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/sections/section-y/chapters", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])

	// Scenes come back in sort order regardless of insert order.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/chapters/chapter-z/scenes", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	scenes := body["data"].([]interface{})
	require.Len(t, scenes, 2)
	assert.Equal(t, float64(1), scenes[0].(map[string]interface{})["order"])
	assert.Equal(t, float64(2), scenes[1].(map[string]interface{})["order"])
}

func TestDeleteSectionCascades(t *testing.T) {
	app, db := setupTestApp(t)
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")

	_, sectionID, chapterID := buildTree(t, app, admin)

	resp, _ := doJSON(t, app, fiber.MethodDelete,
		fmt.Sprintf("/api/sections/%.0f", sectionID), admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chapters int64
	require.NoError(t, db.Model(&models.Chapter{}).
		Where("section_id = ?", uint(sectionID)).Count(&chapters).Error)
	assert.Equal(t, int64(0), chapters)

	var scenes int64
	require.NoError(t, db.Model(&models.Scene{}).
		Where("chapter_id = ?", uint(chapterID)).Count(&scenes).Error)
	assert.Equal(t, int64(0), scenes)
}

func TestDeleteChapterScenesReportsCount(t *testing.T) {
	app, db := setupTestApp(t)
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")

	buildTree(t, app, admin)

	resp, body := doJSON(t, app, fiber.MethodDelete,
		"/api/chapters/chapter-z/scenes", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["deletedCount"])

	// Repeating the delete removes nothing further.
	resp, body = doJSON(t, app, fiber.MethodDelete,
		"/api/chapters/chapter-z/scenes", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["deletedCount"])

	// Unknown chapter slugs do not resolve.
	resp, _ = doJSON(t, app, fiber.MethodDelete,
		"/api/chapters/no-such-chapter/scenes", admin, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateSectionValidation(t *testing.T) {
	app, db := setupTestApp(t)
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")

	// Missing required fields
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/sections", admin, fiber.Map{
		"title": "No Slug",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Parent course must exist
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/sections", admin, fiber.Map{
		"title":    "Dangling",
		"slug":     "dangling",
		"order":    1,
		"courseId": 4242,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSceneCreateValidationAndPartialUpdate(t *testing.T) {
	app, db := setupTestApp(t)
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")

	_, _, chapterID := buildTree(t, app, admin)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/scenes", admin, fiber.Map{
		"title":     "Missing Bits",
		"chapterId": chapterID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/scenes", admin, fiber.Map{
		"title":        "Dangling Scene",
		"chapterId":    4242,
		"dialogue":     "x",
		"drawFunction": "y",
		"order":        1,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var scene models.Scene
	require.NoError(t, db.Where("sort_order = ?", 1).First(&scene).Error)

	resp, body := doJSON(t, app, fiber.MethodPatch,
		fmt.Sprintf("/api/scenes/%d", scene.ID), admin, fiber.Map{
			"dialogue": "new narration",
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := dataField(t, body, "scene")
	assert.Equal(t, "new narration", updated["dialogue"])
	assert.Equal(t, scene.Title, updated["title"])
	assert.Equal(t, float64(scene.Order), updated["order"])
}

func TestHierarchyWritesRequireAdmin(t *testing.T) {
	app, _ := setupTestApp(t)
	reader := registerUser(t, app, "Reader", "reader@example.com")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/courses", reader, fiber.Map{
		"title": "Not Allowed",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
