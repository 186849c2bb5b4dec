package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed template.tex
var defaultTemplate string

// Renderer fills the fixed LaTeX resume template with profile data.
// Matched keywords are passed per call, never stored on the renderer, so
// concurrent renders stay independent.
type Renderer struct {
	templatePath string
}

// NewRenderer creates a renderer. An empty templatePath selects the embedded
// default template.
func NewRenderer(templatePath string) *Renderer {
	return &Renderer{templatePath: templatePath}
}

// Render produces the complete LaTeX document for the profile. When the
// selected lists or prioritized skills are nil, the profile's own lists are
// used unchanged. matchedKeywords drives bolding in bullets and skill lists.
func (r *Renderer) Render(
	profile *types.ProfileData,
	selectedExperiences []types.Experience,
	selectedProjects []types.Project,
	prioritizedSkills *types.TechnicalSkills,
	matchedKeywords []string,
) (string, error) {
	if profile == nil {
		return "", &TemplateError{Message: "profile data is required"}
	}

	template, err := r.loadTemplate()
	if err != nil {
		return "", err
	}

	// Case-fold the matched keyword set once: the slice feeds bullet
	// bolding, the set feeds skill-token membership checks.
	boldList := make([]string, 0, len(matchedKeywords))
	boldSet := make(map[string]bool, len(matchedKeywords))
	for _, kw := range matchedKeywords {
		folded := strings.ToLower(strings.TrimSpace(kw))
		if folded == "" || boldSet[folded] {
			continue
		}
		boldSet[folded] = true
		boldList = append(boldList, folded)
	}

	contact := profile.Contact
	// Email stays unescaped: it must remain a valid link target, not prose.
	linkedin := contact.LinkedIn
	if linkedin == "" {
		linkedin = "https://linkedin.com"
	}
	github := contact.GitHub
	if github == "" {
		github = "https://github.com"
	}
	portfolioLink := ""
	if contact.Portfolio != "" {
		portfolioLink = fmt.Sprintf(` $|$ \href{%s}{\underline{Portfolio}}`, contact.Portfolio)
	}

	replacements := map[string]string{
		"{{FULL_NAME}}":      EscapeLaTeX(contact.FullName),
		"{{PHONE}}":          EscapeLaTeX(contact.Phone),
		"{{EMAIL}}":          contact.Email,
		"{{LINKEDIN_URL}}":   linkedin,
		"{{GITHUB_URL}}":     github,
		"{{PORTFOLIO_LINK}}": portfolioLink,
	}

	educationEntries := make([]string, 0, len(profile.Education))
	for _, edu := range profile.Education {
		educationEntries = append(educationEntries, formatEducationEntry(edu))
	}
	replacements["{{EDUCATION_ENTRIES}}"] = strings.Join(educationEntries, "\n")

	experiences := profile.Experience
	if selectedExperiences != nil {
		experiences = selectedExperiences
	}
	experienceEntries := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		experienceEntries = append(experienceEntries, formatExperienceEntry(exp, boldList))
	}
	replacements["{{EXPERIENCE_ENTRIES}}"] = strings.Join(experienceEntries, "\n\n")

	projects := profile.Projects
	if selectedProjects != nil {
		projects = selectedProjects
	}
	projectEntries := make([]string, 0, len(projects))
	for _, proj := range projects {
		projectEntries = append(projectEntries, formatProjectEntry(proj, boldList))
	}
	replacements["{{PROJECT_ENTRIES}}"] = strings.Join(projectEntries, "\n")

	skills := profile.TechnicalSkills
	if prioritizedSkills != nil {
		skills = *prioritizedSkills
	}
	replacements["{{LANGUAGES}}"] = formatSkillList(skills.Languages, boldSet)
	replacements["{{FRAMEWORKS}}"] = formatSkillList(skills.Frameworks, boldSet)
	replacements["{{DEVELOPER_TOOLS}}"] = formatSkillList(skills.DeveloperTools, boldSet)
	replacements["{{LIBRARIES}}"] = formatSkillList(skills.Libraries, boldSet)

	for placeholder, value := range replacements {
		template = strings.ReplaceAll(template, placeholder, value)
	}

	return template, nil
}

// loadTemplate reads the template file, or returns the embedded default.
func (r *Renderer) loadTemplate() (string, error) {
	if r.templatePath == "" {
		return defaultTemplate, nil
	}

	content, err := os.ReadFile(r.templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", r.templatePath),
				Cause:   err,
			}
		}
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", r.templatePath),
			Cause:   err,
		}
	}
	return string(content), nil
}

func formatEducationEntry(edu types.Education) string {
	institution := EscapeLaTeX(edu.Institution)
	location := EscapeLaTeX(edu.Location)
	degree := EscapeLaTeX(edu.Degree)
	dates := EscapeLaTeX(NormalizeDates(edu.Dates))

	if edu.GPA != "" {
		degree = degree + ", GPA: " + EscapeLaTeX(edu.GPA)
	}

	return fmt.Sprintf("    \\resumeSubheading\n      {%s}{%s}\n      {%s}{%s}", institution, location, degree, dates)
}

func formatExperienceEntry(exp types.Experience, boldKeywords []string) string {
	title := EscapeLaTeX(exp.Title)
	dates := EscapeLaTeX(NormalizeDates(exp.Dates))
	organization := EscapeLaTeX(exp.Organization)
	location := EscapeLaTeX(exp.Location)

	var entry strings.Builder
	fmt.Fprintf(&entry, "    \\resumeSubheading\n      {%s}{%s}\n      {%s}{%s}\n", title, dates, organization, location)

	if len(exp.Bullets) > 0 {
		entry.WriteString("      \\resumeItemListStart\n")
		for _, bullet := range exp.Bullets {
			fmt.Fprintf(&entry, "        \\resumeItem{%s}\n", renderBullet(bullet, boldKeywords))
		}
		entry.WriteString("      \\resumeItemListEnd\n")
	}

	return entry.String()
}

func formatProjectEntry(proj types.Project, boldKeywords []string) string {
	name := EscapeLaTeX(proj.Name)
	technologies := EscapeLaTeX(proj.Technologies)
	dates := EscapeLaTeX(NormalizeDates(proj.Dates))

	var entry strings.Builder
	fmt.Fprintf(&entry, "      \\resumeProjectHeading\n          {\\textbf{%s} $|$ \\emph{%s}}{%s}\n", name, technologies, dates)

	if len(proj.Bullets) > 0 {
		entry.WriteString("          \\resumeItemListStart\n")
		for _, bullet := range proj.Bullets {
			fmt.Fprintf(&entry, "            \\resumeItem{%s}\n", renderBullet(bullet, boldKeywords))
		}
		entry.WriteString("          \\resumeItemListEnd\n")
	}

	return entry.String()
}

// renderBullet applies the load-bearing order: collapse whitespace, escape,
// then bold against the escaped text. Bolding raw text first would corrupt
// the inserted markers once escaping ran.
func renderBullet(bullet string, boldKeywords []string) string {
	collapsed := strings.Join(strings.Fields(bullet), " ")
	escaped := EscapeLaTeX(collapsed)
	return BoldKeywords(escaped, boldKeywords)
}

// formatSkillList escapes and comma-joins skills, bolding any skill whose
// case-folded, trimmed form is in the matched set.
func formatSkillList(skills []string, matched map[string]bool) string {
	formatted := make([]string, 0, len(skills))
	for _, skill := range skills {
		escaped := EscapeLaTeX(skill)
		if matched[strings.ToLower(strings.TrimSpace(skill))] {
			formatted = append(formatted, `\textbf{`+escaped+`}`)
		} else {
			formatted = append(formatted, escaped)
		}
	}
	return strings.Join(formatted, ", ")
}
