package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createArticle(t *testing.T, app *fiber.App, token string, payload fiber.Map) map[string]interface{} {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/articles", token, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %v", body)
	return dataField(t, body, "article")
}

func TestCreateArticleDerivesFields(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	article := createArticle(t, app, editor, fiber.Map{
		"title":   "My First Article!",
		"content": "Some body text here.",
	})

	assert.Equal(t, "my-first-article", article["slug"])
	assert.Equal(t, "draft", article["status"])
	assert.Equal(t, "Some body text here.", article["excerpt"])
	assert.Nil(t, article["publishedAt"])
}

func TestArticlePayloadUsesCamelCaseFieldNames(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	article := createArticle(t, app, editor, fiber.Map{
		"title":   "Field Names",
		"content": "Some body text here.",
	})

	assert.NotNil(t, article["id"])
	assert.NotNil(t, article["createdAt"])
	assert.NotNil(t, article["updatedAt"])

	// No raw struct-field names and no soft-delete marker leak out.
	for _, key := range []string{"ID", "CreatedAt", "UpdatedAt", "DeletedAt", "deletedAt"} {
		_, present := article[key]
		assert.False(t, present, "unexpected key %q", key)
	}
}

func TestCreateArticleDuplicateSlug(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	createArticle(t, app, editor, fiber.Map{"title": "Same Title", "content": "one"})
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/articles", editor, fiber.Map{
		"title":   "Same Title",
		"content": "two",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "fail", body["status"])
}

func TestPublishedAtTransitions(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	article := createArticle(t, app, editor, fiber.Map{"title": "Lifecycle", "content": "text"})
	id := fmt.Sprintf("%v", article["id"])

	// draft -> published stamps the timestamp
	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/articles/"+id+"/status", editor, fiber.Map{
		"status": "published",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	published := dataField(t, body, "article")
	require.NotNil(t, published["publishedAt"])
	firstPublishedAt := published["publishedAt"]

	// published -> published keeps the original timestamp
	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/articles/"+id+"/status", editor, fiber.Map{
		"status": "published",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, firstPublishedAt, dataField(t, body, "article")["publishedAt"])

	// published -> archived clears it
	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/articles/"+id+"/status", editor, fiber.Map{
		"status": "archived",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, dataField(t, body, "article")["publishedAt"])

	// archived -> published stamps a fresh timestamp
	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/articles/"+id+"/status", editor, fiber.Map{
		"status": "published",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, dataField(t, body, "article")["publishedAt"])
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	article := createArticle(t, app, editor, fiber.Map{"title": "Enum", "content": "text"})
	id := fmt.Sprintf("%v", article["id"])

	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/articles/"+id+"/status", editor, fiber.Map{
		"status": "live",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetBySlugPublishedOnlyAndCountsViews(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	createArticle(t, app, editor, fiber.Map{"title": "Hidden Draft", "content": "text"})
	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/articles/hidden-draft", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	createArticle(t, app, editor, fiber.Map{
		"title": "Public Piece", "content": "text", "status": "published",
	})
	for i := 0; i < 3; i++ {
		resp, _ = doJSON(t, app, fiber.MethodGet, "/api/articles/public-piece", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var article models.Article
	require.NoError(t, db.Where("slug = ?", "public-piece").First(&article).Error)
	assert.Equal(t, 3, article.Stats.Views)
}

func TestListArticlesAnonymousSeesOnlyPublished(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	createArticle(t, app, editor, fiber.Map{"title": "Draft One", "content": "text"})
	createArticle(t, app, editor, fiber.Map{"title": "Live One", "content": "text", "status": "published"})

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/articles?status=draft", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])

	items := body["data"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "published", first["status"])
}

func TestCommaTagNormalization(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	article := createArticle(t, app, editor, fiber.Map{
		"title":   "Tagged",
		"content": "text",
		"tags":    "Go, Distributed Systems , Go",
	})

	tags := article["tags"].([]interface{})
	names := make(map[string]bool)
	for _, raw := range tags {
		tag := raw.(map[string]interface{})
		names[tag["name"].(string)] = true
	}
	assert.Len(t, names, 2)
	assert.True(t, names["Go"])
	assert.True(t, names["Distributed Systems"])

	var tag models.Tag
	require.NoError(t, db.Where("name = ?", "Distributed Systems").First(&tag).Error)
	assert.Equal(t, "distributed-systems", tag.Slug)
	assert.Equal(t, 1, tag.ArticleCount)
}

func TestTagIDArrayFiltersUnknownIDs(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	admin := registerWithRole(t, app, db, "Admin", "admin@example.com", "admin")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/tags", admin, fiber.Map{"name": "golang"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	tagID := dataField(t, body, "tag")["id"]

	article := createArticle(t, app, editor, fiber.Map{
		"title":   "By ID",
		"content": "text",
		"tags":    []interface{}{tagID, 9999},
	})
	assert.Len(t, article["tags"].([]interface{}), 1)
}

func TestLikeToggleRoundTrip(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Likeable", "content": "text", "status": "published",
	})
	id := fmt.Sprintf("%v", article["id"])

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/articles/"+id+"/like", reader, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["liked"])
	assert.Equal(t, float64(1), data["likes"])

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/articles/"+id+"/like", reader, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, false, data["liked"])
	assert.Equal(t, float64(0), data["likes"])

	var count int64
	require.NoError(t, db.Table("article_likes").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLikeToggleTreatsExistingMembershipAsUnlike(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	article := createArticle(t, app, editor, fiber.Map{
		"title": "Raced", "content": "text", "status": "published",
	})
	id := fmt.Sprintf("%v", article["id"])

	// A membership row that slipped in ahead of this toggle must not
	// surface as an error; the toggle lands on the unlike branch.
	var user models.User
	require.NoError(t, db.Where("email = ?", "reader@example.com").First(&user).Error)
	require.NoError(t, db.Exec("INSERT INTO article_likes (article_id, user_id) VALUES (?, ?)",
		article["id"], user.ID).Error)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/articles/"+id+"/like", reader, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["liked"])
	assert.Equal(t, float64(0), data["likes"])

	var count int64
	require.NoError(t, db.Table("article_likes").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBulkPublishCountsOnlyChangedRows(t *testing.T) {
	app, db := setupTestApp(t)
	editor := registerWithRole(t, app, db, "Ed", "ed@example.com", "editor")

	draft := createArticle(t, app, editor, fiber.Map{"title": "Bulk Draft", "content": "text"})
	live := createArticle(t, app, editor, fiber.Map{
		"title": "Bulk Live", "content": "text", "status": "published",
	})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/articles/bulk-publish", editor, fiber.Map{
		"ids": []interface{}{draft["id"], live["id"]},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["modifiedCount"])
}

func TestArticleWriteRequiresEditorRole(t *testing.T) {
	app, _ := setupTestApp(t)
	reader := registerUser(t, app, "Reader", "reader@example.com")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/articles", reader, fiber.Map{
		"title": "Nope", "content": "text",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
