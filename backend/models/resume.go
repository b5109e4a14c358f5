package models

import (
	"time"

	"gorm.io/datatypes"
)

type ResumeSkills struct {
	Languages      []string `json:"languages"`
	Technologies   []string `json:"technologies"`
	DeveloperTools []string `json:"developerTools"`
	Databases      []string `json:"databases"`
	Others         []string `json:"others"`
}

type ResumeExperience struct {
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Location   string   `json:"location,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Highlights []string `json:"highlights"`
}

type ResumeEducation struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	Year         string   `json:"year,omitempty"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

type ResumeProject struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies"`
	Description  string   `json:"description,omitempty"`
}

// CustomizationEntry is one append-only record of a change applied while
// tailoring a resume to a job description.
type CustomizationEntry struct {
	Section   string    `json:"section"`
	Changes   string    `json:"changes"`
	Timestamp time.Time `json:"timestamp"`
}

// Resume is a denormalized document per version: either the canonical
// template (IsTemplate) or a job-customized derivative referencing its
// template via TemplateID. Templates are never mutated in place.
type Resume struct {
	Model
	Name     string `gorm:"not null" json:"name"`
	Title    string `gorm:"not null" json:"title"`
	Location string `json:"location,omitempty"`
	Email    string `gorm:"index;not null" json:"email"`
	Phone    string `json:"phone,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Github   string `json:"github,omitempty"`
	Summary  string `json:"summary"`

	Skills       datatypes.JSONType[ResumeSkills]       `json:"skills"`
	Experience   datatypes.JSONType[[]ResumeExperience] `json:"experience"`
	Education    datatypes.JSONType[[]ResumeEducation]  `json:"education"`
	Projects     datatypes.JSONType[[]ResumeProject]    `json:"projects"`
	Achievements datatypes.JSONType[[]string]           `json:"achievements"`

	IsTemplate bool  `gorm:"index;default:false" json:"isTemplate"`
	TemplateID *uint `gorm:"index" json:"templateId"`

	JobDescription   string `json:"jobDescription,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	JobTitle         string `json:"jobTitle,omitempty"`
	CustomizedForJob bool   `gorm:"index;default:false" json:"customizedForJob"`

	ATSScore         int                                      `json:"atsScore"`
	KeywordsMatched  datatypes.JSONType[[]string]             `json:"keywordsMatched"`
	KeywordsMissing  datatypes.JSONType[[]string]             `json:"keywordsMissing"`
	CustomizationLog datatypes.JSONType[[]CustomizationEntry] `json:"customizationLog"`

	CustomizedPDFPath string `json:"customizedPdfPath,omitempty"`
	CustomizedPDFURL  string `json:"customizedPdfUrl,omitempty"`
}

// MatchPercentage is the keyword-overlap ratio between matched and total
// keywords, in percent.
func (r *Resume) MatchPercentage() int {
	matched := len(r.KeywordsMatched.Data())
	missing := len(r.KeywordsMissing.Data())
	total := matched + missing
	if total == 0 {
		return 0
	}
	return int(float64(matched)/float64(total)*100 + 0.5)
}
