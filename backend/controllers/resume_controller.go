package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/services"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResumeController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	LLM      *services.LLM
	Renderer *services.PDFRenderer
	Log      zerolog.Logger
}

func NewResumeController(db *gorm.DB, cfg *config.Config, llm *services.LLM, renderer *services.PDFRenderer, log zerolog.Logger) *ResumeController {
	return &ResumeController{DB: db, Cfg: cfg, LLM: llm, Renderer: renderer, Log: log}
}

// template returns the canonical base resume, seeding it on first use.
func (rc *ResumeController) template() (*models.Resume, error) {
	var resume models.Resume
	err := rc.DB.Where("is_template = ?", true).First(&resume).Error
	if err == nil {
		return &resume, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seeded := services.BaseTemplate()
	if err := rc.DB.Create(seeded).Error; err != nil {
		return nil, err
	}
	return seeded, nil
}

// CreateBaseResume is idempotent: it returns the existing template or
// seeds it.
func (rc *ResumeController) CreateBaseResume(c *fiber.Ctx) error {
	resume, err := rc.template()
	if err != nil {
		return utils.InternalError(c, "Could not load resume template")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"resume": resume})
}

// AnalyzeJob extracts keywords and requirement signals from a job
// description and scores the template against them. The LLM pass is
// best-effort on top of the static dictionary.
func (rc *ResumeController) AnalyzeJob(c *fiber.Ctx) error {
	var input struct {
		JobDescription string `json:"jobDescription"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.JobDescription == "" {
		return utils.BadRequest(c, "jobDescription is required")
	}

	resume, err := rc.template()
	if err != nil {
		return utils.InternalError(c, "Could not load resume template")
	}

	keywords := services.ExtractKeywords(input.JobDescription)
	if extra := services.AnalyzeKeywordsWithLLM(c.Context(), rc.LLM, input.JobDescription); len(extra) > 0 {
		keywords = services.MergeKeywords(keywords, extra)
	}
	requirements := services.ExtractRequirements(input.JobDescription)
	matched, missing, score := services.MatchKeywords(resume, keywords)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"keywords":        keywords,
		"requirements":    requirements,
		"keywordsMatched": matched,
		"keywordsMissing": missing,
		"matchScore":      score,
	})
}

// CustomizeResume produces a new job-tailored resume derived from the
// template. The template row is never modified.
func (rc *ResumeController) CustomizeResume(c *fiber.Ctx) error {
	var input struct {
		JobDescription string `json:"jobDescription"`
		CompanyName    string `json:"companyName"`
		JobTitle       string `json:"jobTitle"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.JobDescription == "" {
		return utils.BadRequest(c, "jobDescription is required")
	}

	base, err := rc.template()
	if err != nil {
		return utils.InternalError(c, "Could not load resume template")
	}

	result := services.CustomizeResume(c.Context(), rc.LLM, base, input.JobDescription, input.CompanyName, input.JobTitle)

	customized := models.Resume{
		Name:     base.Name,
		Title:    base.Title,
		Location: base.Location,
		Email:    base.Email,
		Phone:    base.Phone,
		Linkedin: base.Linkedin,
		Github:   base.Github,
		Summary:  result.CustomizedData.Summary,

		Skills:       datatypes.NewJSONType(result.CustomizedData.Skills),
		Experience:   datatypes.NewJSONType(result.CustomizedData.Experience),
		Education:    base.Education,
		Projects:     base.Projects,
		Achievements: base.Achievements,

		TemplateID:       &base.ID,
		JobDescription:   input.JobDescription,
		CompanyName:      result.ExtractedInfo.CompanyName,
		JobTitle:         result.ExtractedInfo.JobTitle,
		CustomizedForJob: true,

		ATSScore:         result.ATSScore,
		KeywordsMatched:  datatypes.NewJSONType(result.KeywordsMatched),
		KeywordsMissing:  datatypes.NewJSONType(result.KeywordsMissing),
		CustomizationLog: datatypes.NewJSONType(result.CustomizationLog),
	}

	if err := rc.DB.Create(&customized).Error; err != nil {
		return utils.InternalError(c, "Could not save customized resume")
	}

	rc.Log.Info().Uint("resume_id", customized.ID).
		Str("company", customized.CompanyName).
		Int("ats_score", customized.ATSScore).
		Msg("resume customized")

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"resume":          customized,
		"matchPercentage": customized.MatchPercentage(),
	})
}

// GeneratePDF renders a resume through the external renderer and stores
// the artifact under the uploads directory. The whole round trip runs
// under a 30 second budget.
func (rc *ResumeController) GeneratePDF(c *fiber.Ctx) error {
	if !rc.Renderer.Ready() {
		return utils.InternalError(c, "PDF renderer is not configured")
	}

	var resume models.Resume
	if err := rc.DB.First(&resume, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resume not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	html, err := services.RenderResumeHTML(&resume)
	if err != nil {
		return utils.InternalError(c, "Could not render resume")
	}

	ctx, cancel := context.WithTimeout(c.Context(), services.PDFRenderTimeout)
	defer cancel()

	pdf, err := rc.Renderer.Render(ctx, html)
	if err != nil {
		rc.Log.Error().Err(err).Uint("resume_id", resume.ID).Msg("pdf render failed")
		return utils.InternalError(c, "Could not generate PDF")
	}

	if err := os.MkdirAll(rc.Cfg.UploadsDir, 0o755); err != nil {
		return utils.InternalError(c, "Could not prepare uploads directory")
	}

	filename := fmt.Sprintf("resume_%d_%d.pdf", resume.ID, time.Now().Unix())
	path := filepath.Join(rc.Cfg.UploadsDir, filename)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return utils.InternalError(c, "Could not store PDF")
	}

	resume.CustomizedPDFPath = path
	resume.CustomizedPDFURL = "/uploads/" + filename
	if err := rc.DB.Save(&resume).Error; err != nil {
		return utils.InternalError(c, "Could not update resume")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"pdfUrl":  resume.CustomizedPDFURL,
		"pdfPath": resume.CustomizedPDFPath,
	})
}

func (rc *ResumeController) ListResumes(c *fiber.Ctx) error {
	query := rc.DB.Model(&models.Resume{})
	if c.Query("customized") == "true" {
		query = query.Where("customized_for_job = ?", true)
	}
	if company := c.Query("company"); company != "" {
		query = query.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(company)+"%")
	}

	var resumes []models.Resume
	if err := query.Order("created_at DESC").Find(&resumes).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, resumes, len(resumes), int64(len(resumes)), 0, 0)
}

func (rc *ResumeController) GetResume(c *fiber.Ctx) error {
	var resume models.Resume
	if err := rc.DB.First(&resume, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resume not found")
		}
		return utils.InternalError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"resume":          resume,
		"matchPercentage": resume.MatchPercentage(),
	})
}
