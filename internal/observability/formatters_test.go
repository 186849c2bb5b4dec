package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestPrintJobAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobAnalysis(&types.JobAnalysis{
		JobTitle:        "Senior Engineer",
		CompanyName:     "Acme Corp",
		ExperienceLevel: "senior",
		RequiredSkills:  []string{"Go", "Kubernetes"},
		NiceToHave:      []string{"Rust"},
	})

	out := buf.String()
	assert.Contains(t, out, "JOB ANALYSIS")
	assert.Contains(t, out, "Senior Engineer")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "Rust")
}

func TestPrintJobAnalysis_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(&types.MatchResult{
		MatchedKeywords: []string{"go", "sql"},
		ATSScore:        66.7,
		TotalKeywords:   3,
	})

	out := buf.String()
	assert.Contains(t, out, "ATS OPTIMIZATION")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Matched 2 of 3 keywords")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.ProfileData{
		Contact: types.ContactInfo{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Experience: []types.Experience{
			{Title: "Engineer"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED PROFILE")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Experiences: 1")
}

func TestItemList_CapsLongLists(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	out := itemList("Keywords", items)

	assert.Contains(t, out, "- a")
	assert.Contains(t, out, "- e")
	assert.NotContains(t, out, "- f")
	assert.Contains(t, out, "and 2 more")
	assert.Equal(t, 1, strings.Count(out, "..."))
}
