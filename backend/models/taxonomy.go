package models

// Tag and Type are metadata entities attached to articles. Their article
// counters are maintained by the article service, not by hooks.

type Tag struct {
	Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description,omitempty"`
	Category    string `gorm:"default:other" json:"category"` // technology, lifestyle, business, science, arts, other
	ArticleCount int   `gorm:"default:0" json:"articles"`
}

type Type struct {
	Model
	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string `json:"description,omitempty"`
	ArticleCount int    `gorm:"default:0" json:"articles"`
}

type Category struct {
	Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description,omitempty"`
}
