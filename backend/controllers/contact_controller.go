package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ContactController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log zerolog.Logger
}

func NewContactController(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *ContactController {
	return &ContactController{DB: db, Cfg: cfg, Log: log}
}

// SubmitContact is the public contact-form endpoint. The sanitized
// submission is stored and logged for follow-up.
func (cc *ContactController) SubmitContact(c *fiber.Ctx) error {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || message == "" {
		return utils.BadRequest(c, "Name, email and message are required")
	}
	if !strings.Contains(email, "@") {
		return utils.BadRequest(c, "Please provide a valid email address")
	}
	if len(name) < 2 || len(name) > 100 {
		return utils.BadRequest(c, "Name must be between 2 and 100 characters")
	}
	if len(message) < 10 || len(message) > 2000 {
		return utils.BadRequest(c, "Message must be between 10 and 2000 characters")
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = "Contact Form Submission"
	}

	contact := models.Contact{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := cc.DB.Create(&contact).Error; err != nil {
		return utils.InternalError(c, "Could not submit message")
	}

	cc.Log.Info().Uint("contact_id", contact.ID).Str("email", contact.Email).
		Str("subject", contact.Subject).Msg("new contact form submission")

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"message": "Your message has been received successfully! I will get back to you soon.",
	})
}

// GetAllContacts is the admin review queue for submissions.
func (cc *ContactController) GetAllContacts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := cc.DB.Model(&models.Contact{}).Count(&total).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	var contacts []models.Contact
	err := cc.DB.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&contacts).Error
	if err != nil {
		return utils.InternalError(c, "Could not query database")
	}
	return utils.SuccessList(c, contacts, len(contacts), total, page, limit)
}
