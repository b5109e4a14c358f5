package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/himanshukadian/himanshu-blog-backend/backend/utils"
	"gorm.io/gorm"
)

const userLocalsKey = "currentUser"

func loadUser(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (*models.User, error) {
	userID, err := utils.ExtractUserIDFromToken(c, cfg)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.Where("active = ?", true).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "User no longer exists")
		}
		return nil, err
	}
	return &user, nil
}

// Protect rejects requests without a valid token for an active user.
func Protect(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := loadUser(c, db, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// OptionalProtect resolves the caller when a token is present but lets
// anonymous requests through. Used by reads whose visibility depends on
// the caller's role.
func OptionalProtect(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, err := loadUser(c, db, cfg); err == nil {
			c.Locals(userLocalsKey, user)
		}
		return c.Next()
	}
}

// Permit allows only the given roles past. Must run after Protect.
func Permit(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "You do not have permission to perform this action")
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous
// callers.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

// IsAdmin reports whether the caller is an authenticated admin.
func IsAdmin(c *fiber.Ctx) bool {
	user := CurrentUser(c)
	return user != nil && user.Role == models.RoleAdmin
}
