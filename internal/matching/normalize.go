// Package matching normalizes and matches job keywords against candidate
// skills, and derives the ATS score from the match set.
package matching

import "strings"

// variantSuffix is the 2-letter suffix conventionally appended to technology
// names ("react" vs "reactjs"). Stripping it lets suffixed and unsuffixed
// variants of the same name match.
const variantSuffix = "js"

// minStemLength guards against degenerate stripping of short acronyms:
// the suffix is only removed when the remaining stem is longer than this.
const minStemLength = 2

// suffixExceptions lists normalized forms that keep their suffix even though
// they end in variantSuffix. These are names where the "js" is not a variant
// marker.
var suffixExceptions = map[string]bool{
	"js": true,
}

// NormalizeTerm canonicalizes a skill or keyword for fuzzy comparison:
// lower-case, trim, strip '.', '-' and '_', then strip the technology
// variant suffix when safe. "React.js", "reactjs" and "React" all normalize
// to "react"; "JS" stays "js".
func NormalizeTerm(term string) string {
	normalized := strings.ToLower(strings.TrimSpace(term))
	normalized = strings.NewReplacer(".", "", "-", "", "_", "").Replace(normalized)

	if strings.HasSuffix(normalized, variantSuffix) && !suffixExceptions[normalized] {
		stem := strings.TrimSuffix(normalized, variantSuffix)
		if len(stem) > minStemLength {
			return stem
		}
	}

	return normalized
}
