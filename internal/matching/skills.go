package matching

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// PrioritizeSkills reorders every skill category so that skills matching a
// job keyword come first. The reorder is a stable partition: within the
// matched group and within the unmatched group the candidate's original
// ordering is preserved.
func PrioritizeSkills(skills types.TechnicalSkills, jobKeywords []string) types.TechnicalSkills {
	return types.TechnicalSkills{
		Languages:      partitionByMatch(skills.Languages, jobKeywords),
		Frameworks:     partitionByMatch(skills.Frameworks, jobKeywords),
		DeveloperTools: partitionByMatch(skills.DeveloperTools, jobKeywords),
		Libraries:      partitionByMatch(skills.Libraries, jobKeywords),
	}
}

func partitionByMatch(skills []string, jobKeywords []string) []string {
	if len(skills) == 0 {
		return skills
	}

	matched := make([]string, 0, len(skills))
	unmatched := make([]string, 0, len(skills))
	for _, skill := range skills {
		if matchesAnyKeyword(skill, jobKeywords) {
			matched = append(matched, skill)
		} else {
			unmatched = append(unmatched, skill)
		}
	}
	return append(matched, unmatched...)
}

// matchesAnyKeyword applies the same exact-then-normalized rule Match uses,
// so prioritization and scoring never disagree about what counts as a match.
func matchesAnyKeyword(skill string, jobKeywords []string) bool {
	skillFolded := strings.ToLower(strings.TrimSpace(skill))
	skillNorm := NormalizeTerm(skill)
	for _, keyword := range jobKeywords {
		if strings.ToLower(strings.TrimSpace(keyword)) == skillFolded {
			return true
		}
		if skillNorm != "" && NormalizeTerm(keyword) == skillNorm {
			return true
		}
	}
	return false
}
