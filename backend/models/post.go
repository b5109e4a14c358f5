package models

// Post is a lightweight note separate from the main article stream.
type Post struct {
	Model
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Content    string    `json:"content"`
	AuthorID   uint      `json:"authorId"`
	Author     *User     `json:"author,omitempty"`
	CategoryID *uint     `json:"categoryId"`
	Category   *Category `json:"category,omitempty"`
	Status     string    `gorm:"default:draft" json:"status"`
}
