package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type SectionController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSectionController(db *gorm.DB, cfg *config.Config) *SectionController {
	return &SectionController{DB: db, Cfg: cfg}
}

func (sc *SectionController) GetAllSections(c *fiber.Ctx) error {
	var sections []models.Section
	if err := sc.DB.Order("course_id, sort_order").Find(&sections).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, sections, len(sections), int64(len(sections)), 0, 0)
}

func (sc *SectionController) GetSectionBySlug(c *fiber.Ctx) error {
	var section models.Section
	if err := sc.DB.Where("slug = ?", c.Params("slug")).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"section": section})
}

// GetSectionChapters lists a section's chapters in sort order.
func (sc *SectionController) GetSectionChapters(c *fiber.Ctx) error {
	var section models.Section
	if err := sc.DB.Where("slug = ?", c.Params("slug")).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var chapters []models.Chapter
	err := sc.DB.Where("section_id = ?", section.ID).
		Order("sort_order").Find(&chapters).Error
	if err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, chapters, len(chapters), int64(len(chapters)), 0, 0)
}

func (sc *SectionController) CreateSection(c *fiber.Ctx) error {
	var input struct {
		Title    string `json:"title"`
		Slug     string `json:"slug"`
		Order    int    `json:"order"`
		CourseID uint   `json:"courseId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" || input.Slug == "" || input.Order <= 0 || input.CourseID == 0 {
		return utils.BadRequest(c, "Title, slug, order and courseId are required")
	}

	var course models.Course
	if err := sc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	section := models.Section{
		Title:    input.Title,
		Slug:     input.Slug,
		Order:    input.Order,
		CourseID: input.CourseID,
	}
	if err := sc.DB.Create(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A section with this slug already exists")
		}
		return utils.InternalError(c, "Could not create section")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"section": section})
}

// DeleteSection removes a section with everything under it. The whole
// cascade (scenes, then chapters, then the section) runs in one
// transaction so a partial delete never survives.
func (sc *SectionController) DeleteSection(c *fiber.Ctx) error {
	var section models.Section
	if err := sc.DB.First(&section, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&models.Chapter{}).Where("section_id = ?", section.ID).
			Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}

		if len(chapterIDs) > 0 {
			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Scene{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", chapterIDs).Delete(&models.Chapter{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&section).Error
	})
	if err != nil {
		return utils.InternalError(c, "Could not delete section")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Section deleted"})
}
