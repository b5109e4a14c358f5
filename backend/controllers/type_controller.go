package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type TypeController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTypeController(db *gorm.DB, cfg *config.Config) *TypeController {
	return &TypeController{DB: db, Cfg: cfg}
}

func (tc *TypeController) GetAllTypes(c *fiber.Ctx) error {
	var types []models.Type
	if err := tc.DB.Order("article_count DESC, name").Find(&types).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, types, len(types), int64(len(types)), 0, 0)
}

func (tc *TypeController) GetTypeBySlug(c *fiber.Ctx) error {
	var articleType models.Type
	if err := tc.DB.Where("slug = ?", c.Params("slug")).First(&articleType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Type not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"type": articleType})
}

func (tc *TypeController) CreateType(c *fiber.Ctx) error {
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

	articleType := models.Type{
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Description: input.Description,
	}
	if err := tc.DB.Create(&articleType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A type with this name already exists")
		}
		return utils.InternalError(c, "Could not create type")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"type": articleType})
}

func (tc *TypeController) UpdateType(c *fiber.Ctx) error {
	var articleType models.Type
	if err := tc.DB.First(&articleType, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Type not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != "" && input.Name != articleType.Name {
		articleType.Name = input.Name
		articleType.Slug = utils.Slugify(input.Name)
	}
	if input.Description != "" {
		articleType.Description = input.Description
	}

	if err := tc.DB.Save(&articleType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A type with this name already exists")
		}
		return utils.InternalError(c, "Could not update type")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"type": articleType})
}

func (tc *TypeController) DeleteType(c *fiber.Ctx) error {
	var articleType models.Type
	if err := tc.DB.First(&articleType, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Type not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	// Articles keep existing; they just lose the type reference.
	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Article{}).Where("type_id = ?", articleType.ID).
			Update("type_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&articleType).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not delete type")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Type deleted"})
}
