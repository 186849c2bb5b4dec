package matching

import (
	"math"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Match compares every job keyword against the candidate's skills. Exact
// case-insensitive matches are preferred; only when no exact match exists is
// the normalized form compared. Both the job-side and the user-side spelling
// of each hit are recorded for bolding, since the resume body may use either.
func Match(userSkills []string, jobKeywords []string) types.MatchResult {
	folded := make([]string, len(userSkills))
	for i, skill := range userSkills {
		folded[i] = strings.ToLower(strings.TrimSpace(skill))
	}

	// The keyword set is counted case-folded and trimmed: "Python" in one
	// analysis field and "python" in another are a single keyword, and blank
	// entries are no keyword at all. The size of this folded set is the score
	// denominator, so matching every keyword always scores 100.
	keywords := make([]string, 0, len(jobKeywords))
	seenKeyword := make(map[string]bool, len(jobKeywords))
	for _, keyword := range jobKeywords {
		kwFolded := strings.ToLower(strings.TrimSpace(keyword))
		if kwFolded == "" || seenKeyword[kwFolded] {
			continue
		}
		seenKeyword[kwFolded] = true
		keywords = append(keywords, kwFolded)
	}

	result := types.MatchResult{
		MatchedKeywords: []string{},
		KeywordsToBold:  []string{},
		TotalKeywords:   len(keywords),
	}

	seenBold := make(map[string]bool)

	addBold := func(term string) {
		if term != "" && !seenBold[term] {
			seenBold[term] = true
			result.KeywordsToBold = append(result.KeywordsToBold, term)
		}
	}

	for _, kwFolded := range keywords {
		matchIdx := -1
		for i, skill := range folded {
			if skill == kwFolded {
				matchIdx = i
				break
			}
		}
		if matchIdx < 0 {
			kwNorm := NormalizeTerm(kwFolded)
			if kwNorm != "" {
				for i, skill := range userSkills {
					if NormalizeTerm(skill) == kwNorm {
						matchIdx = i
						break
					}
				}
			}
		}
		if matchIdx < 0 {
			continue
		}

		result.MatchedKeywords = append(result.MatchedKeywords, kwFolded)
		addBold(kwFolded)
		addBold(folded[matchIdx])
	}

	result.ATSScore = Score(len(result.MatchedKeywords), result.TotalKeywords)
	return result
}

// Score converts a matched/total ratio into a percentage rounded to one
// decimal place. An empty keyword set scores zero rather than dividing by it.
func Score(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(total)*1000) / 10
}
