package models

// Four-level content tree: Course -> Section -> Chapter -> Scene.
// Order is a positive integer used only for sort order within a parent;
// duplicates are tolerated.

type Course struct {
	Model
	Title       string `gorm:"uniqueIndex;not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description,omitempty"`
}

type Section struct {
	Model
	Title    string `gorm:"not null" json:"title"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Order    int    `gorm:"column:sort_order;not null" json:"order"`
	CourseID uint   `gorm:"index;not null" json:"courseId"`
}

type Chapter struct {
	Model
	Title     string `gorm:"not null" json:"title"`
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	Order     int    `gorm:"column:sort_order;not null" json:"order"`
	SectionID uint   `gorm:"index;not null" json:"sectionId"`
}

type Scene struct {
	Model
	Title     string `gorm:"not null" json:"title"`
	ChapterID uint   `gorm:"index;not null" json:"chapterId"`
	// Narration shown alongside the visualization.
	Dialogue string `gorm:"not null" json:"dialogue"`
	// Serialized draw procedure executed by the frontend canvas.
	DrawFunction    string `gorm:"not null" json:"drawFunction"`
	Order           int    `gorm:"column:sort_order;not null" json:"order"`
	ClearBeforeDraw bool   `gorm:"default:false" json:"clearBeforeDraw"`
}
