// Package rendering fills the LaTeX resume template with profile data and
// applies keyword bolding.
package rendering

import "strings"

// EscapeLaTeX escapes special LaTeX characters in text.
// Special characters: \ { } $ & % # ^ _ ~
//
// The single-pass rune walk means a backslash introduced by an escape sequence
// is never itself re-escaped. EscapeLaTeX is NOT idempotent: applying it twice
// corrupts the output, so callers must escape raw text exactly once, before
// any further text operations (including bolding).
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
