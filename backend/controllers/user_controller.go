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

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"user": userPayload(user)})
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Name      string `json:"name"`
		Bio       string `json:"bio"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := uc.DB.Save(user).Error; err != nil {
		return utils.InternalError(c, "Could not update profile")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"user": userPayload(user)})
}

// ListUsers is admin-only. Inactive users are hidden unless explicitly
// requested.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	query := uc.DB.Model(&models.User{})
	if c.Query("includeInactive") != "true" {
		query = query.Where("active = ?", true)
	}

	var users []models.User
	if err := query.Order("id").Find(&users).Error; err != nil {
		return utils.InternalError(c, "Could not query database")
	}

	payload := make([]fiber.Map, 0, len(users))
	for i := range users {
		entry := userPayload(&users[i])
		entry["active"] = users[i].Active
		payload = append(payload, entry)
	}
	return utils.SuccessList(c, payload, len(payload), int64(len(payload)), 0, 0)
}

// UpdateUserRole is admin-only.
func (uc *UserController) UpdateUserRole(c *fiber.Ctx) error {
	var input struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	switch input.Role {
	case models.RoleUser, models.RoleAuthor, models.RoleEditor, models.RoleAdmin:
	default:
		return utils.BadRequest(c, "Invalid role")
	}

	var user models.User
	if err := uc.DB.First(&user, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	user.Role = input.Role
	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalError(c, "Could not update user")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"user": userPayload(&user)})
}

// DeactivateUser soft-deletes by flipping the Active flag.
func (uc *UserController) DeactivateUser(c *fiber.Ctx) error {
	var user models.User
	if err := uc.DB.First(&user, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalError(c, "Could not query database")
	}

	user.Active = false
	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalError(c, "Could not deactivate user")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "User deactivated"})
}
