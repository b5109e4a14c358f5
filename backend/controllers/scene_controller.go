package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

type SceneController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSceneController(db *gorm.DB, cfg *config.Config) *SceneController {
	return &SceneController{DB: db, Cfg: cfg}
}

func (sc *SceneController) GetScene(c *fiber.Ctx) error {
	var scene models.Scene
	if err := sc.DB.First(&scene, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Scene not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"scene": scene})
}

func (sc *SceneController) CreateScene(c *fiber.Ctx) error {
	var input struct {
		Title           string `json:"title"`
		ChapterID       uint   `json:"chapterId"`
		Dialogue        string `json:"dialogue"`
		DrawFunction    string `json:"drawFunction"`
		Order           int    `json:"order"`
		ClearBeforeDraw bool   `json:"clearBeforeDraw"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" || input.ChapterID == 0 || input.Dialogue == "" ||
		input.DrawFunction == "" || input.Order <= 0 {
		return utils.BadRequest(c, "Title, chapterId, dialogue, drawFunction and order are required")
	}

	var chapter models.Chapter
	if err := sc.DB.First(&chapter, input.ChapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	scene := models.Scene{
		Title:           input.Title,
		ChapterID:       input.ChapterID,
		Dialogue:        input.Dialogue,
		DrawFunction:    input.DrawFunction,
		Order:           input.Order,
		ClearBeforeDraw: input.ClearBeforeDraw,
	}
	if err := sc.DB.Create(&scene).Error; err != nil {
		return utils.InternalError(c, "Could not create scene")
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{"scene": scene})
}

// UpdateScene applies a partial update; omitted fields are untouched.
func (sc *SceneController) UpdateScene(c *fiber.Ctx) error {
	var scene models.Scene
	if err := sc.DB.First(&scene, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Scene not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	var input struct {
		Title           string `json:"title"`
		Dialogue        string `json:"dialogue"`
		DrawFunction    string `json:"drawFunction"`
		Order           int    `json:"order"`
		ClearBeforeDraw *bool  `json:"clearBeforeDraw"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		scene.Title = input.Title
	}
	if input.Dialogue != "" {
		scene.Dialogue = input.Dialogue
	}
	if input.DrawFunction != "" {
		scene.DrawFunction = input.DrawFunction
	}
	if input.Order > 0 {
		scene.Order = input.Order
	}
	if input.ClearBeforeDraw != nil {
		scene.ClearBeforeDraw = *input.ClearBeforeDraw
	}

	if err := sc.DB.Save(&scene).Error; err != nil {
		return utils.InternalError(c, "Could not update scene")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"scene": scene})
}

func (sc *SceneController) DeleteScene(c *fiber.Ctx) error {
	var scene models.Scene
	if err := sc.DB.First(&scene, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Scene not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	if err := sc.DB.Delete(&scene).Error; err != nil {
		return utils.InternalError(c, "Could not delete scene")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Scene deleted"})
}
