package models

// Comment status values.
const (
	CommentPending  = "pending"
	CommentApproved = "approved"
	CommentRejected = "rejected"
	CommentSpam     = "spam"
)

func ValidCommentStatus(s string) bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected, CommentSpam:
		return true
	}
	return false
}

type Comment struct {
	Model
	Content   string `gorm:"not null" json:"content"`
	ArticleID uint   `gorm:"index;not null" json:"articleId"`
	AuthorID  uint   `gorm:"not null" json:"authorId"`
	Author    *User  `json:"author,omitempty"`

	// Nil for top-level comments. Deleting a parent does not cascade to
	// replies; they are left orphaned.
	ParentID *uint     `gorm:"index" json:"parentId"`
	Replies  []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	Status   string `gorm:"default:pending;index" json:"status"`
	IsEdited bool   `gorm:"default:false" json:"isEdited"`

	EditHistory []CommentEdit `gorm:"foreignKey:CommentID" json:"editHistory,omitempty"`
}

type CommentEdit struct {
	Model
	CommentID uint   `gorm:"index" json:"commentId"`
	Content   string `json:"content"`
	EditedBy  uint   `json:"editedBy"`
}
