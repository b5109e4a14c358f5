package models

// Contact is a public contact-form submission. Submissions are persisted
// for later review; outbound email transport is an external concern.
type Contact struct {
	Model
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"index;not null" json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `gorm:"not null" json:"message"`
}
