package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/middleware"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type ArticleController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewArticleController(db *gorm.DB, cfg *config.Config) *ArticleController {
	return &ArticleController{DB: db, Cfg: cfg}
}

// articleInput accepts tags as either a comma-separated string of names
// or an array of existing tag ids, so RawMessage keeps both shapes.
type articleInput struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Excerpt  string          `json:"excerpt"`
	Status   string          `json:"status"`
	Featured *bool           `json:"featured"`
	TypeID   *uint           `json:"typeId"`
	Type     string          `json:"type"`
	Tags     json.RawMessage `json:"tags"`
}

// normalizeTags resolves the raw tags payload into Tag rows. A string is
// split on commas and each name is found or created; an id array is
// filtered down to ids that exist. Unknown ids are dropped silently.
func (ac *ArticleController) normalizeTags(tx *gorm.DB, raw json.RawMessage) ([]models.Tag, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var commaString string
	if err := json.Unmarshal(raw, &commaString); err == nil {
		var tags []models.Tag
		for _, part := range strings.Split(commaString, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			var tag models.Tag
			err := tx.Where("name = ?", name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = models.Tag{Name: name, Slug: utils.Slugify(name)}
				if err := tx.Create(&tag).Error; err != nil {
					return nil, err
				}
			} else if err != nil {
				return nil, err
			}
			tags = append(tags, tag)
		}
		return tags, nil
	}

	var ids []uint
	if err := json.Unmarshal(raw, &ids); err == nil {
		if len(ids) == 0 {
			return []models.Tag{}, nil
		}
		var tags []models.Tag
		if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
			return nil, err
		}
		return tags, nil
	}

	return nil, errors.New("tags must be a comma-separated string or an array of ids")
}

// resolveType coerces either a typeId or a type name into a Type id.
func (ac *ArticleController) resolveType(input *articleInput) (*uint, error) {
	if input.TypeID != nil {
		var t models.Type
		if err := ac.DB.First(&t, *input.TypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return input.TypeID, nil
	}
	if input.Type != "" {
		var t models.Type
		err := ac.DB.Where("name = ? OR slug = ?", input.Type, utils.Slugify(input.Type)).First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &t.ID, nil
	}
	return nil, nil
}

// refreshTagCounts recomputes article counters for the given tag ids
// from the join table.
func (ac *ArticleController) refreshTagCounts(tagIDs []uint) {
	for _, id := range tagIDs {
		ac.DB.Model(&models.Tag{}).Where("id = ?", id).
			Update("article_count", gorm.Expr("(SELECT COUNT(*) FROM article_tags WHERE tag_id = ?)", id))
	}
}

func tagIDs(tags []models.Tag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// applyStatusTransition sets Status and moves PublishedAt per the
// transition rules: entering published stamps now, leaving clears it,
// staying published keeps the original timestamp.
func applyStatusTransition(article *models.Article, newStatus string) {
	previous := article.Status
	article.Status = newStatus

	switch {
	case newStatus == models.StatusPublished && previous != models.StatusPublished:
		now := time.Now()
		article.PublishedAt = &now
	case newStatus != models.StatusPublished && previous == models.StatusPublished:
		article.PublishedAt = nil
	}
}

func (ac *ArticleController) GetAllArticles(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := ac.DB.Model(&models.Article{}).
		Preload("Author").Preload("Tags").Preload("Type")

	// Non-admin callers only ever see published articles regardless of
	// the requested filter.
	status := c.Query("status")
	if !middleware.IsAdmin(c) {
		status = models.StatusPublished
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if typeSlug := c.Query("type"); typeSlug != "" {
		query = query.Joins("JOIN types ON types.id = articles.type_id").
			Where("types.slug = ?", typeSlug)
	}
	if tagSlug := c.Query("tag"); tagSlug != "" {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	var articles []models.Article
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&articles).Error
	if err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	return utils.SuccessList(c, articles, len(articles), total, page, limit)
}

// GetArticleBySlug resolves published articles only and counts the view.
func (ac *ArticleController) GetArticleBySlug(c *fiber.Ctx) error {
	var article models.Article
	err := ac.DB.Preload("Author").Preload("Tags").Preload("Type").
		Where("slug = ? AND status = ?", c.Params("slug"), models.StatusPublished).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	ac.DB.Model(&models.Article{}).Where("id = ?", article.ID).
		Update("stat_views", gorm.Expr("stat_views + 1"))
	article.Stats.Views++

	return utils.Success(c, fiber.StatusOK, fiber.Map{"article": article})
}

func (ac *ArticleController) CreateArticle(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input articleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" || input.Content == "" {
		return utils.BadRequest(c, "Title and content are required")
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidArticleStatus(status) {
		return utils.BadRequest(c, "Invalid status")
	}

	typeID, err := ac.resolveType(&input)
	if err != nil {
		return utils.InternalError(c, "Could not resolve type")
	}

	excerpt := input.Excerpt
	if excerpt == "" {
		excerpt = utils.Excerpt(input.Content)
	}

	article := models.Article{
		Title:       input.Title,
		Slug:        utils.Slugify(input.Title),
		Content:     input.Content,
		Excerpt:     excerpt,
		AuthorID:    user.ID,
		TypeID:      typeID,
		Status:      status,
		ReadingTime: utils.ReadingTime(input.Content),
	}
	if input.Featured != nil {
		article.Featured = *input.Featured
	}
	if status == models.StatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	tags, err := ac.normalizeTags(ac.DB, input.Tags)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	article.Tags = tags

	if err := ac.DB.Create(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "An article with this slug already exists")
		}
		return utils.InternalError(c, "Could not create article")
	}
	ac.refreshTagCounts(tagIDs(tags))

	ac.DB.Preload("Author").Preload("Tags").Preload("Type").First(&article, article.ID)
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"article": article})
}

func (ac *ArticleController) UpdateArticle(c *fiber.Ctx) error {
	var article models.Article
	if err := ac.DB.Preload("Tags").First(&article, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var input articleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	previousTags := tagIDs(article.Tags)

	if input.Title != "" && input.Title != article.Title {
		article.Title = input.Title
		article.Slug = utils.Slugify(input.Title)
	}
	if input.Content != "" && input.Content != article.Content {
		article.Content = input.Content
		article.ReadingTime = utils.ReadingTime(input.Content)
		if input.Excerpt == "" {
			article.Excerpt = utils.Excerpt(input.Content)
		}
	}
	if input.Excerpt != "" {
		article.Excerpt = input.Excerpt
	}
	if input.Featured != nil {
		article.Featured = *input.Featured
	}
	if input.TypeID != nil || input.Type != "" {
		typeID, err := ac.resolveType(&input)
		if err != nil {
			return utils.InternalError(c, "Could not resolve type")
		}
		article.TypeID = typeID
	}
	if input.Status != "" {
		if !models.ValidArticleStatus(input.Status) {
			return utils.BadRequest(c, "Invalid status")
		}
		applyStatusTransition(&article, input.Status)
	}

	var newTags []models.Tag
	tagsChanged := len(input.Tags) > 0 && string(input.Tags) != "null"
	if tagsChanged {
		tags, err := ac.normalizeTags(ac.DB, input.Tags)
		if err != nil {
			return utils.BadRequest(c, err.Error())
		}
		newTags = tags
	}

	if err := ac.DB.Omit("Tags", "LikedBy").Save(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "An article with this slug already exists")
		}
		return utils.InternalError(c, "Could not update article")
	}

	if tagsChanged {
		if err := ac.DB.Model(&article).Association("Tags").Replace(newTags); err != nil {
			return utils.InternalError(c, "Could not update tags")
		}
		ac.refreshTagCounts(append(previousTags, tagIDs(newTags)...))
	}

	ac.DB.Preload("Author").Preload("Tags").Preload("Type").First(&article, article.ID)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"article": article})
}

func (ac *ArticleController) DeleteArticle(c *fiber.Ctx) error {
	var article models.Article
	if err := ac.DB.Preload("Tags").First(&article, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	affectedTags := tagIDs(article.Tags)

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&article).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&article).Association("LikedBy").Clear(); err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not delete article")
	}

	ac.refreshTagCounts(affectedTags)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Article deleted"})
}

func (ac *ArticleController) UpdateStatus(c *fiber.Ctx) error {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !models.ValidArticleStatus(input.Status) {
		return utils.BadRequest(c, "Status must be one of draft, published, archived")
	}

	var article models.Article
	if err := ac.DB.First(&article, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	applyStatusTransition(&article, input.Status)
	if err := ac.DB.Save(&article).Error; err != nil {
		return utils.InternalError(c, "Could not update status")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"article": article})
}

func (ac *ArticleController) ToggleFeature(c *fiber.Ctx) error {
	var article models.Article
	if err := ac.DB.First(&article, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	article.Featured = !article.Featured
	if err := ac.DB.Save(&article).Error; err != nil {
		return utils.InternalError(c, "Could not update article")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"article": article})
}

// ToggleLike flips the caller's like on an article. Membership in the
// article_likes join table is the source of truth: the insert either
// succeeds (like) or hits the composite primary key (already liked, so
// unlike). The counter moves with membership, floored at zero.
func (ac *ArticleController) ToggleLike(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var article models.Article
	if err := ac.DB.First(&article, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	liked := false
	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		insertErr := tx.Exec("INSERT INTO article_likes (article_id, user_id) VALUES (?, ?)",
			article.ID, user.ID).Error
		if insertErr == nil {
			liked = true
			return tx.Model(&models.Article{}).Where("id = ?", article.ID).
				Update("stat_likes", gorm.Expr("stat_likes + 1")).Error
		}
		if !errors.Is(insertErr, gorm.ErrDuplicatedKey) {
			return insertErr
		}

		// The row was already there, so this toggle removes the like.
		if err := tx.Exec("DELETE FROM article_likes WHERE article_id = ? AND user_id = ?",
			article.ID, user.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Article{}).Where("id = ?", article.ID).
			Update("stat_likes", gorm.Expr("CASE WHEN stat_likes > 0 THEN stat_likes - 1 ELSE 0 END")).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not toggle like")
	}

	ac.DB.First(&article, article.ID)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"liked": liked,
		"likes": article.Stats.Likes,
	})
}

// BulkPublish publishes every listed article that is not already
// published and reports how many rows actually changed.
func (ac *ArticleController) BulkPublish(c *fiber.Ctx) error {
	var input struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if len(input.IDs) == 0 {
		return utils.BadRequest(c, "ids is required")
	}

	result := ac.DB.Model(&models.Article{}).
		Where("id IN ? AND status != ?", input.IDs, models.StatusPublished).
		Updates(map[string]interface{}{
			"status":       models.StatusPublished,
			"published_at": time.Now(),
		})
	if result.Error != nil {
		return utils.InternalError(c, "Could not publish articles")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"modifiedCount": result.RowsAffected,
	})
}
