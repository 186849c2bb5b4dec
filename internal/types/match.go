package types

// MatchResult holds the outcome of matching job keywords against the
// candidate's declared skills.
type MatchResult struct {
	// MatchedKeywords contains the case-folded job-side literals that
	// matched a user skill.
	MatchedKeywords []string `json:"matched_keywords"`
	// KeywordsToBold is the union of job-side and user-side literal forms
	// (case-folded) for matched terms, used for document bolding.
	KeywordsToBold []string `json:"keywords_to_bold"`
	// ATSScore is the percentage of job keywords matched, rounded to one
	// decimal. Zero when the job keyword set is empty.
	ATSScore float64 `json:"ats_score"`
	// TotalKeywords is the size of the job keyword set the score was
	// computed against.
	TotalKeywords int `json:"total_keywords"`
}
