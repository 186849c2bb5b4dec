package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoldKeywords_Basic(t *testing.T) {
	got := BoldKeywords("built services in Go and Python", []string{"go", "python"})
	assert.Equal(t, `built services in \textbf{Go} and \textbf{Python}`, got)
}

func TestBoldKeywords_PreservesOriginalCasing(t *testing.T) {
	got := BoldKeywords("PostgreSQL and postgresql", []string{"postgresql"})
	assert.Equal(t, `\textbf{PostgreSQL} and \textbf{postgresql}`, got)
}

// Longer phrases win over their own substrings: "react native" must be
// bolded whole, not split by a "react" match.
func TestBoldKeywords_LongestFirst(t *testing.T) {
	got := BoldKeywords("shipped a react native app", []string{"react", "react native"})
	assert.Equal(t, `shipped a \textbf{react native} app`, got)
	assert.NotContains(t, got, `\textbf{react} native`)
}

// A shorter keyword must not re-bold text inside an inserted \textbf, nor
// match against the command name itself.
func TestBoldKeywords_NoNestedBolding(t *testing.T) {
	got := BoldKeywords("context matters", []string{"context", "text"})
	assert.Equal(t, `\textbf{context} matters`, got)
}

func TestBoldKeywords_EscapedKeywordMatchesEscapedText(t *testing.T) {
	escaped := EscapeLaTeX("profiled C# services")
	got := BoldKeywords(escaped, []string{"C#"})
	assert.Equal(t, `profiled \textbf{C\#} services`, got)
}

func TestBoldKeywords_MultipleOccurrences(t *testing.T) {
	got := BoldKeywords("go tooling for go services", []string{"go"})
	assert.Equal(t, 2, strings.Count(got, `\textbf{`))
}

// Some runes shrink when lowercased (İ is two bytes, its lowercase i is
// one), shifting every folded byte offset after them. Matches past such a
// rune must still slice the original text at the right place.
func TestBoldKeywords_CaseFoldingChangesByteLength(t *testing.T) {
	got := BoldKeywords("İstanbul Go office", []string{"go"})
	assert.Equal(t, `İstanbul \textbf{Go} office`, got)
}

func TestBoldKeywords_NoMatch(t *testing.T) {
	text := "built data pipelines"
	assert.Equal(t, text, BoldKeywords(text, []string{"kubernetes"}))
}

func TestBoldKeywords_EmptyInputs(t *testing.T) {
	assert.Equal(t, "", BoldKeywords("", []string{"go"}))
	assert.Equal(t, "text", BoldKeywords("text", nil))
	assert.Equal(t, "text", BoldKeywords("text", []string{"", "  "}))
}
