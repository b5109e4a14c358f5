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

type PostController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPostController(db *gorm.DB, cfg *config.Config) *PostController {
	return &PostController{DB: db, Cfg: cfg}
}

func (pc *PostController) GetAllPosts(c *fiber.Ctx) error {
	query := pc.DB.Model(&models.Post{}).Preload("Author").Preload("Category")
	if !middleware.IsAdmin(c) {
		query = query.Where("status = ?", models.StatusPublished)
	}
	if categorySlug := c.Query("category"); categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, posts, len(posts), int64(len(posts)), 0, 0)
}

func (pc *PostController) GetPostBySlug(c *fiber.Ctx) error {
	query := pc.DB.Preload("Author").Preload("Category").Where("slug = ?", c.Params("slug"))
	if !middleware.IsAdmin(c) {
		query = query.Where("status = ?", models.StatusPublished)
	}

	var post models.Post
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Post not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"post": post})
}

func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		CategoryID *uint  `json:"categoryId"`
		Status     string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidArticleStatus(status) {
		return utils.BadRequest(c, "Invalid status")
	}

	post := models.Post{
		Title:      input.Title,
		Slug:       utils.Slugify(input.Title),
		Content:    input.Content,
		AuthorID:   user.ID,
		CategoryID: input.CategoryID,
		Status:     status,
	}
	if err := pc.DB.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A post with this slug already exists")
		}
		return utils.InternalError(c, "Could not create post")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"post": post})
}

func (pc *PostController) UpdatePost(c *fiber.Ctx) error {
	var post models.Post
	if err := pc.DB.First(&post, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Post not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var input struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		CategoryID *uint  `json:"categoryId"`
		Status     string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" && input.Title != post.Title {
		post.Title = input.Title
		post.Slug = utils.Slugify(input.Title)
	}
	if input.Content != "" {
		post.Content = input.Content
	}
	if input.CategoryID != nil {
		post.CategoryID = input.CategoryID
	}
	if input.Status != "" {
		if !models.ValidArticleStatus(input.Status) {
			return utils.BadRequest(c, "Invalid status")
		}
		post.Status = input.Status
	}

	if err := pc.DB.Save(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A post with this slug already exists")
		}
		return utils.InternalError(c, "Could not update post")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"post": post})
}

func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	var post models.Post
	if err := pc.DB.First(&post, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Post not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	if err := pc.DB.Delete(&post).Error; err != nil {
		return utils.InternalError(c, "Could not delete post")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Post deleted"})
}

// Category endpoints live with posts; categories only classify posts.

func (pc *PostController) GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := pc.DB.Order("name").Find(&categories).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, categories, len(categories), int64(len(categories)), 0, 0)
}

func (pc *PostController) CreateCategory(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Description: input.Description,
	}
	if err := pc.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A category with this name already exists")
		}
		return utils.InternalError(c, "Could not create category")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"category": category})
}

func (pc *PostController) DeleteCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := pc.DB.First(&category, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not delete category")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Category deleted"})
}
