package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createComment(t *testing.T, app *fiber.App, token, articleID string, payload fiber.Map) map[string]interface{} {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/articles/"+articleID+"/comments", token, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %v", body)
	return dataField(t, body, "comment")
}

func TestCommentCounterMovesWithCreateAndDelete(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Discussed", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])

	first := createComment(t, app, reader, articleID, fiber.Map{"content": "first"})
	createComment(t, app, reader, articleID, fiber.Map{"content": "second"})

	var stored models.Article
	require.NoError(t, db.Where("slug = ?", "discussed").First(&stored).Error)
	assert.Equal(t, 2, stored.Stats.Comments)

	commentID := fmt.Sprintf("%v", first["id"])
	resp, _ := doJSON(t, app, fiber.MethodDelete, "/api/comments/"+commentID, reader, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.Where("slug = ?", "discussed").First(&stored).Error)
	assert.Equal(t, 1, stored.Stats.Comments)
}

func TestCommentCounterNeverGoesNegative(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Clamped", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])
	comment := createComment(t, app, reader, articleID, fiber.Map{"content": "soon gone"})

	// Force the counter out of sync before deleting.
	require.NoError(t, db.Model(&models.Article{}).Where("slug = ?", "clamped").
		Update("stat_comments", 0).Error)

	commentID := fmt.Sprintf("%v", comment["id"])
	resp, _ := doJSON(t, app, fiber.MethodDelete, "/api/comments/"+commentID, reader, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Article
	require.NoError(t, db.Where("slug = ?", "clamped").First(&stored).Error)
	assert.Equal(t, 0, stored.Stats.Comments)
}

func TestDeletingParentOrphansReplies(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Threaded", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])

	parent := createComment(t, app, reader, articleID, fiber.Map{"content": "parent"})
	parentID := parent["id"]
	reply := createComment(t, app, reader, articleID, fiber.Map{
		"content":  "reply",
		"parentId": parentID,
	})

	resp, _ := doJSON(t, app, fiber.MethodDelete,
		fmt.Sprintf("/api/comments/%v", parentID), reader, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The reply survives, still pointing at the deleted parent.
	var orphan models.Comment
	require.NoError(t, db.First(&orphan, fmt.Sprintf("%v", reply["id"])).Error)
	require.NotNil(t, orphan.ParentID)
	assert.Equal(t, uint(parentID.(float64)), *orphan.ParentID)

	var parentRow models.Comment
	err := db.First(&parentRow, fmt.Sprintf("%v", parentID)).Error
	assert.Error(t, err)
}

func TestPendingCommentsHiddenFromPublic(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Moderated", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])
	comment := createComment(t, app, reader, articleID, fiber.Map{"content": "awaiting approval"})

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/articles/"+articleID+"/comments", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["results"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/articles/"+articleID+"/comments", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])

	// Approval makes it publicly visible.
	commentID := fmt.Sprintf("%v", comment["id"])
	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/comments/"+commentID+"/approve", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/articles/"+articleID+"/comments", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])
}

func TestApprovedRepliesVisibleUnderApprovedParent(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Deep Thread", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])

	parent := createComment(t, app, reader, articleID, fiber.Map{"content": "parent"})
	approved := createComment(t, app, reader, articleID, fiber.Map{
		"content": "approved reply", "parentId": parent["id"],
	})
	createComment(t, app, reader, articleID, fiber.Map{
		"content": "pending reply", "parentId": parent["id"],
	})

	for _, id := range []interface{}{parent["id"], approved["id"]} {
		resp, _ := doJSON(t, app, fiber.MethodPatch,
			fmt.Sprintf("/api/comments/%v/approve", id), admin, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/articles/"+articleID+"/comments", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := body["data"].([]interface{})
	require.Len(t, items, 1)

	replies, _ := items[0].(map[string]interface{})["replies"].([]interface{})
	assert.Len(t, replies, 1)
}

func TestEditCommentRecordsHistory(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Edited", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])
	comment := createComment(t, app, reader, articleID, fiber.Map{"content": "original"})
	commentID := fmt.Sprintf("%v", comment["id"])

	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/comments/"+commentID, reader, fiber.Map{
		"content": "revised",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := dataField(t, body, "comment")
	assert.Equal(t, "revised", updated["content"])
	assert.Equal(t, true, updated["isEdited"])

	var edits []models.CommentEdit
	require.NoError(t, db.Where("comment_id = ?", commentID).Find(&edits).Error)
	require.Len(t, edits, 1)
	assert.Equal(t, "original", edits[0].Content)
}

func TestCommentOwnershipEnforced(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	reader := registerUser(t, app, "Reader", "reader@example.com")
	other := registerUser(t, app, "Other", "other@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Owned", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])
	comment := createComment(t, app, reader, articleID, fiber.Map{"content": "mine"})
	commentID := fmt.Sprintf("%v", comment["id"])

	resp, _ := doJSON(t, app, fiber.MethodDelete, "/api/comments/"+commentID, other, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/comments/"+commentID, other, fiber.Map{
		"content": "hijacked",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCommentStatusValidation(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Status Check", "content": "text", "status": "published",
	})
	articleID := fmt.Sprintf("%v", article["id"])
	comment := createComment(t, app, reader, articleID, fiber.Map{"content": "hm"})
	commentID := fmt.Sprintf("%v", comment["id"])

	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/comments/"+commentID+"/status", admin, fiber.Map{
		"status": "vaporized",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/comments/"+commentID+"/status", admin, fiber.Map{
		"status": "spam",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "spam", dataField(t, body, "comment")["status"])
}
