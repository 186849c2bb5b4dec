package types

import "strings"

// JobAnalysis is the structured analysis of a job description. It is produced
// once per job description and treated as immutable within a thread.
type JobAnalysis struct {
	JobTitle                string   `json:"job_title"`
	CompanyName             string   `json:"company_name,omitempty"`
	RequiredSkills          []string `json:"required_skills"`
	PreferredQualifications []string `json:"preferred_qualifications"`
	KeyResponsibilities     []string `json:"key_responsibilities"`
	ExperienceLevel         string   `json:"experience_level"`
	Keywords                []string `json:"keywords"`
	NiceToHave              []string `json:"nice_to_have"`
}

// AllKeywords returns the union of required skills, keywords, and
// nice-to-haves, deduplicated on the case-folded, trimmed form so "Python"
// and "python" count once. The first spelling encountered is kept. This
// union is the ATS score denominator.
func (j *JobAnalysis) AllKeywords() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, group := range [][]string{j.RequiredSkills, j.Keywords, j.NiceToHave} {
		for _, kw := range group {
			folded := strings.ToLower(strings.TrimSpace(kw))
			if folded == "" || seen[folded] {
				continue
			}
			seen[folded] = true
			out = append(out, kw)
		}
	}
	return out
}
