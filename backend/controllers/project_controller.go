package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ProjectController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log zerolog.Logger
}

func NewProjectController(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *ProjectController {
	return &ProjectController{DB: db, Cfg: cfg, Log: log}
}

// SubmitProject is the public contact-form endpoint.
func (pc *ProjectController) SubmitProject(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Company     string `json:"company"`
		Description string `json:"description"`
		Budget      string `json:"budget"`
		Timeline    string `json:"timeline"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" || input.Email == "" || input.Description == "" {
		return utils.BadRequest(c, "Name, email and description are required")
	}

	project := models.Project{
		Name:        input.Name,
		Email:       input.Email,
		Company:     input.Company,
		Description: input.Description,
		Budget:      input.Budget,
		Timeline:    input.Timeline,
		Status:      models.ProjectPending,
	}
	if err := pc.DB.Create(&project).Error; err != nil {
		return utils.InternalError(c, "Could not submit inquiry")
	}

	pc.Log.Info().Uint("project_id", project.ID).Str("email", project.Email).
		Msg("new project inquiry")

	return utils.Success(c, fiber.StatusCreated, fiber.Map{"project": project})
}

func (pc *ProjectController) GetAllProjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := pc.DB.Model(&models.Project{})
	if status := c.Query("status"); status != "" {
		if !models.ValidProjectStatus(status) {
			return utils.BadRequest(c, "Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	var projects []models.Project
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&projects).Error
	if err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, projects, len(projects), total, page, limit)
}

func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	var project models.Project
	if err := pc.DB.First(&project, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"project": project})
}

// UpdateProjectStatus moves an inquiry between the five states. Any
// transition is allowed.
func (pc *ProjectController) UpdateProjectStatus(c *fiber.Ctx) error {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !models.ValidProjectStatus(input.Status) {
		return utils.BadRequest(c, "Status must be one of pending, analyzing, in-progress, completed, cancelled")
	}

	var project models.Project
	if err := pc.DB.First(&project, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	project.Status = input.Status
	if err := pc.DB.Save(&project).Error; err != nil {
		return utils.InternalError(c, "Could not update project")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"project": project})
}
