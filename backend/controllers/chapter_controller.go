package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type ChapterController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChapterController(db *gorm.DB, cfg *config.Config) *ChapterController {
	return &ChapterController{DB: db, Cfg: cfg}
}

func (cc *ChapterController) GetAllChapters(c *fiber.Ctx) error {
	var chapters []models.Chapter
	if err := cc.DB.Order("section_id, sort_order").Find(&chapters).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, chapters, len(chapters), int64(len(chapters)), 0, 0)
}

func (cc *ChapterController) GetChapterBySlug(c *fiber.Ctx) error {
	var chapter models.Chapter
	if err := cc.DB.Where("slug = ?", c.Params("slug")).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"chapter": chapter})
}

// GetChapterScenes lists a chapter's scenes in sort order.
func (cc *ChapterController) GetChapterScenes(c *fiber.Ctx) error {
	var chapter models.Chapter
	if err := cc.DB.Where("slug = ?", c.Params("slug")).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var scenes []models.Scene
	err := cc.DB.Where("chapter_id = ?", chapter.ID).
		Order("sort_order").Find(&scenes).Error
	if err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, scenes, len(scenes), int64(len(scenes)), 0, 0)
}

func (cc *ChapterController) CreateChapter(c *fiber.Ctx) error {
	var input struct {
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		Order     int    `json:"order"`
		SectionID uint   `json:"sectionId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" || input.Slug == "" || input.Order <= 0 || input.SectionID == 0 {
		return utils.BadRequest(c, "Title, slug, order and sectionId are required")
	}

	var section models.Section
	if err := cc.DB.First(&section, input.SectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	chapter := models.Chapter{
		Title:     input.Title,
		Slug:      input.Slug,
		Order:     input.Order,
		SectionID: input.SectionID,
	}
	if err := cc.DB.Create(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A chapter with this slug already exists")
		}
		return utils.InternalError(c, "Could not create chapter")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"chapter": chapter})
}

// DeleteChapterScenes clears a chapter's scenes and reports how many
// rows went away. The chapter resolves by slug, like the scene listing.
func (cc *ChapterController) DeleteChapterScenes(c *fiber.Ctx) error {
	var chapter models.Chapter
	if err := cc.DB.Where("slug = ?", c.Params("slug")).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	result := cc.DB.Where("chapter_id = ?", chapter.ID).Delete(&models.Scene{})
	if result.Error != nil {
		return utils.InternalError(c, "Could not delete scenes")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"deletedCount": result.RowsAffected,
	})
}
