package models

// Role values, in increasing order of privilege.
const (
	RoleUser   = "user"
	RoleAuthor = "author"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

type User struct {
	Model
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"default:user" json:"role"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	// Soft delete: inactive users are excluded from default queries
	// and cannot authenticate.
	Active bool `gorm:"default:true" json:"active"`
}
