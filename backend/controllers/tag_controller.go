package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type TagController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTagController(db *gorm.DB, cfg *config.Config) *TagController {
	return &TagController{DB: db, Cfg: cfg}
}

// GetAllTags lists tags with the busiest first.
func (tc *TagController) GetAllTags(c *fiber.Ctx) error {
	var tags []models.Tag
	if err := tc.DB.Order("article_count DESC, name").Find(&tags).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, tags, len(tags), int64(len(tags)), 0, 0)
}

func (tc *TagController) GetTagBySlug(c *fiber.Ctx) error {
	var tag models.Tag
	if err := tc.DB.Where("slug = ?", c.Params("slug")).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tag not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"tag": tag})
}

func (tc *TagController) CreateTag(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	tag := models.Tag{
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Description: input.Description,
		Category:    input.Category,
	}
	if tag.Category == "" {
		tag.Category = "other"
	}

	if err := tc.DB.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A tag with this name already exists")
		}
		return utils.InternalError(c, "Could not create tag")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"tag": tag})
}

func (tc *TagController) UpdateTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := tc.DB.First(&tag, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tag not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != "" && input.Name != tag.Name {
		tag.Name = input.Name
		tag.Slug = utils.Slugify(input.Name)
	}
	if input.Description != "" {
		tag.Description = input.Description
	}
	if input.Category != "" {
		tag.Category = input.Category
	}

	if err := tc.DB.Save(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A tag with this name already exists")
		}
		return utils.InternalError(c, "Could not update tag")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"tag": tag})
}

func (tc *TagController) DeleteTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := tc.DB.First(&tag, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Tag not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not delete tag")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Tag deleted"})
}
