package types

import (
	"time"

	"github.com/google/uuid"
)

// TailoredContent is the snapshot of job-specific selections stored with a
// generation record.
type TailoredContent struct {
	SelectedExperiences []Experience     `json:"selected_experiences"`
	SelectedProjects    []Project        `json:"selected_projects"`
	PrioritizedSkills   *TechnicalSkills `json:"prioritized_skills,omitempty"`
}

// Generation is a record of one generated resume.
type Generation struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	JobTitle        string          `json:"job_title"`
	CompanyName     string          `json:"company_name,omitempty"`
	JobDescription  string          `json:"job_description,omitempty"`
	TailoredContent TailoredContent `json:"tailored_content"`
	MatchedKeywords []string        `json:"matched_keywords"`
	ATSScore        float64         `json:"ats_score"`
	LaTeXCode       string          `json:"latex_code"`
	PDFPath         string          `json:"pdf_path,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
