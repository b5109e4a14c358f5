package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCourseController(db *gorm.DB, cfg *config.Config) *CourseController {
	return &CourseController{DB: db, Cfg: cfg}
}

func (cc *CourseController) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Order("title").Find(&courses).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, courses, len(courses), int64(len(courses)), 0, 0)
}

func (cc *CourseController) GetCourseBySlug(c *fiber.Ctx) error {
	var course models.Course
	if err := cc.DB.Where("slug = ?", c.Params("slug")).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": course})
}

// GetCourseSections lists a course's sections in sort order.
func (cc *CourseController) GetCourseSections(c *fiber.Ctx) error {
	var course models.Course
	if err := cc.DB.Where("slug = ?", c.Params("slug")).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var sections []models.Section
	err := cc.DB.Where("course_id = ?", course.ID).
		Order("sort_order").Find(&sections).Error
	if err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, sections, len(sections), int64(len(sections)), 0, 0)
}

func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if input.Slug == "" {
		input.Slug = utils.Slugify(input.Title)
	}

	course := models.Course{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A course with this title or slug already exists")
		}
		return utils.InternalError(c, "Could not create course")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"course": course})
}

func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := cc.DB.First(&course, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var input struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Slug != "" {
		course.Slug = input.Slug
	}
	if input.Description != "" {
		course.Description = input.Description
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "A course with this title or slug already exists")
		}
		return utils.InternalError(c, "Could not update course")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": course})
}
