package models

import "time"

// Article status values. The state machine is not strictly linear: any
// status is directly settable, but publishedAt moves with transitions
// into and out of "published".
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

func ValidArticleStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

type ArticleStats struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

type Article struct {
	Model
	Title   string `gorm:"not null" json:"title"`
	Slug    string `gorm:"uniqueIndex;not null" json:"slug"`
	Content string `gorm:"not null" json:"content"`
	Excerpt string `json:"excerpt"`

	AuthorID uint  `json:"authorId"`
	Author   *User `json:"author,omitempty"`

	Tags   []Tag `gorm:"many2many:article_tags" json:"tags"`
	TypeID *uint `json:"typeId"`
	Type   *Type `json:"type,omitempty"`

	Status   string `gorm:"default:draft;index" json:"status"`
	Featured bool   `gorm:"default:false" json:"featured"`

	// Minutes, derived from word count at 200 wpm whenever content changes.
	ReadingTime int `json:"readingTime"`

	Stats   ArticleStats `gorm:"embedded;embeddedPrefix:stat_" json:"stats"`
	LikedBy []User       `gorm:"many2many:article_likes" json:"likedBy"`

	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
}
