package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/middleware"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type CommentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommentController(db *gorm.DB, cfg *config.Config) *CommentController {
	return &CommentController{DB: db, Cfg: cfg}
}

// decrementCommentCount moves the article counter down by one without
// ever going below zero. A single conditional UPDATE so concurrent
// deletes cannot race the counter negative.
func (cc *CommentController) decrementCommentCount(tx *gorm.DB, articleID uint) error {
	return tx.Model(&models.Article{}).Where("id = ?", articleID).
		Update("stat_comments", gorm.Expr("CASE WHEN stat_comments > 0 THEN stat_comments - 1 ELSE 0 END")).Error
}

// GetArticleComments lists top-level comments for an article with their
// replies. Non-admin callers only see approved comments and approved
// replies.
func (cc *CommentController) GetArticleComments(c *fiber.Ctx) error {
	var article models.Article
	if err := cc.DB.First(&article, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	query := cc.DB.Preload("Author").
		Where("article_id = ? AND parent_id IS NULL", article.ID).
		Order("created_at DESC")

	if middleware.IsAdmin(c) {
		query = query.Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Author").Order("created_at ASC")
		})
	} else {
		query = query.Where("status = ?", models.CommentApproved).
			Preload("Replies", "status = ?", models.CommentApproved).
			Preload("Replies.Author")
	}

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	return utils.SuccessList(c, comments, len(comments), int64(len(comments)), 0, 0)
}

func (cc *CommentController) CreateComment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parentId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Content == "" {
		return utils.BadRequest(c, "Content is required")
	}

	var article models.Article
	if err := cc.DB.First(&article, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	if input.ParentID != nil {
		var parent models.Comment
		err := cc.DB.Where("id = ? AND article_id = ?", *input.ParentID, article.ID).
			First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Parent comment not found")
			}
			return utils.InternalError(c, "Could not query database")
		}
	}

	comment := models.Comment{
		Content:   input.Content,
		ArticleID: article.ID,
		AuthorID:  user.ID,
		ParentID:  input.ParentID,
		Status:    models.CommentPending,
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Article{}).Where("id = ?", article.ID).
			Update("stat_comments", gorm.Expr("stat_comments + 1")).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not create comment")
	}

	cc.DB.Preload("Author").First(&comment, comment.ID)
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"comment": comment})
}

// UpdateComment edits content. Only the comment's author or an admin may
// edit; the previous content is kept as an edit-history row.
func (cc *CommentController) UpdateComment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Content == "" {
		return utils.BadRequest(c, "Content is required")
	}

	var comment models.Comment
	if err := cc.DB.First(&comment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Comment not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	if comment.AuthorID != user.ID && user.Role != models.RoleAdmin {
		return utils.Forbidden(c, "You can only edit your own comments")
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		edit := models.CommentEdit{
			CommentID: comment.ID,
			Content:   comment.Content,
			EditedBy:  user.ID,
		}
		if err := tx.Create(&edit).Error; err != nil {
			return err
		}
		comment.Content = input.Content
		comment.IsEdited = true
		return tx.Save(&comment).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not update comment")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"comment": comment})
}

// DeleteComment removes a comment and decrements the article counter.
// Replies are left in place, orphaned.
func (cc *CommentController) DeleteComment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var comment models.Comment
	if err := cc.DB.First(&comment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Comment not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	if comment.AuthorID != user.ID && user.Role != models.RoleAdmin {
		return utils.Forbidden(c, "You can only delete your own comments")
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentEdit{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return cc.decrementCommentCount(tx, comment.ArticleID)
	})
	if err != nil {
		return utils.InternalError(c, "Could not delete comment")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Comment deleted"})
}

func (cc *CommentController) setStatus(c *fiber.Ctx, status string) error {
	var comment models.Comment
	if err := cc.DB.First(&comment, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Comment not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	comment.Status = status
	if err := cc.DB.Save(&comment).Error; err != nil {
		return utils.InternalError(c, "Could not update comment")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"comment": comment})
}

func (cc *CommentController) ApproveComment(c *fiber.Ctx) error {
	return cc.setStatus(c, models.CommentApproved)
}

// UnapproveComment returns a comment to the moderation queue.
func (cc *CommentController) UnapproveComment(c *fiber.Ctx) error {
	return cc.setStatus(c, models.CommentPending)
}

func (cc *CommentController) UpdateCommentStatus(c *fiber.Ctx) error {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !models.ValidCommentStatus(input.Status) {
		return utils.BadRequest(c, "Status must be one of pending, approved, rejected, spam")
	}
	return cc.setStatus(c, input.Status)
}

// GetAllComments is the admin moderation queue, optionally filtered by
// status.
func (cc *CommentController) GetAllComments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := cc.DB.Model(&models.Comment{}).Preload("Author")
	if status := c.Query("status"); status != "" {
		if !models.ValidCommentStatus(status) {
			return utils.BadRequest(c, "Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	var comments []models.Comment
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	return utils.SuccessList(c, comments, len(comments), total, page, limit)
}
