// Package types defines the shared data structures for the resume builder.
package types

// ContactInfo holds the candidate's contact block.
type ContactInfo struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Degree      string `json:"degree"`
	GPA         string `json:"gpa,omitempty"`
	Dates       string `json:"dates"`
}

// Experience represents a work experience entry.
// Bullets are ordered by display priority. RelevanceScore is assigned during
// content selection and drives page-fit trimming; it is zero for freshly
// extracted profiles.
type Experience struct {
	Title          string   `json:"title"`
	Dates          string   `json:"dates"`
	Organization   string   `json:"organization"`
	Location       string   `json:"location"`
	Bullets        []string `json:"bullets"`
	RelevanceScore float64  `json:"relevance_score,omitempty"`
}

// Project represents a project entry.
type Project struct {
	Name           string   `json:"name"`
	Technologies   string   `json:"technologies"`
	Dates          string   `json:"dates"`
	Bullets        []string `json:"bullets"`
	RelevanceScore float64  `json:"relevance_score,omitempty"`
}

// TechnicalSkills holds categorized skill lists. The order within each
// category encodes display priority.
type TechnicalSkills struct {
	Languages      []string `json:"languages"`
	Frameworks     []string `json:"frameworks"`
	DeveloperTools []string `json:"developer_tools"`
	Libraries      []string `json:"libraries"`
}

// All returns every skill across all categories, category order preserved.
func (s TechnicalSkills) All() []string {
	out := make([]string, 0, len(s.Languages)+len(s.Frameworks)+len(s.DeveloperTools)+len(s.Libraries))
	out = append(out, s.Languages...)
	out = append(out, s.Frameworks...)
	out = append(out, s.DeveloperTools...)
	out = append(out, s.Libraries...)
	return out
}

// Award represents an award or honor.
type Award struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ProfileData is the structured candidate profile extracted from a resume.
type ProfileData struct {
	Contact         ContactInfo     `json:"contact"`
	Education       []Education     `json:"education"`
	Experience      []Experience    `json:"experience"`
	Projects        []Project       `json:"projects"`
	TechnicalSkills TechnicalSkills `json:"technical_skills"`
	Awards          []Award         `json:"awards,omitempty"`
}

// Complete reports whether the profile meets the minimum bar for resume
// generation: contact fields present, at least one experience, and at least
// one populated skill category.
func (p *ProfileData) Complete() bool {
	if p == nil {
		return false
	}
	hasContact := p.Contact.FullName != "" && p.Contact.Email != "" && p.Contact.Phone != ""
	hasExperience := len(p.Experience) > 0
	hasSkills := len(p.TechnicalSkills.Languages) > 0 ||
		len(p.TechnicalSkills.Frameworks) > 0 ||
		len(p.TechnicalSkills.DeveloperTools) > 0 ||
		len(p.TechnicalSkills.Libraries) > 0
	return hasContact && hasExperience && hasSkills
}
