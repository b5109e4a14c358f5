package models

// Project status values. Transitions are free-form; no ordering is
// enforced.
const (
	ProjectPending    = "pending"
	ProjectAnalyzing  = "analyzing"
	ProjectInProgress = "in-progress"
	ProjectCompleted  = "completed"
	ProjectCancelled  = "cancelled"
)

func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectPending, ProjectAnalyzing, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Project is a lead/inquiry record submitted from the public contact form.
type Project struct {
	Model
	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"not null" json:"email"`
	Company     string `json:"company,omitempty"`
	Description string `gorm:"not null" json:"description"`
	Budget      string `json:"budget,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	Status      string `gorm:"default:pending;index" json:"status"`
}
