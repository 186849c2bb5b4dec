// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(profile *types.ProfileData) {
	if profile == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", profile.Contact.FullName)
	fmt.Fprintf(&b, "Email: %s\n", profile.Contact.Email)
	fmt.Fprintf(&b, "Experiences: %d\n", len(profile.Experience))
	fmt.Fprintf(&b, "Projects: %d\n", len(profile.Projects))
	fmt.Fprintf(&b, "Education: %d\n", len(profile.Education))
	fmt.Fprintf(&b, "Skills: %d", len(profile.TechnicalSkills.All()))

	p.printBox("EXTRACTED PROFILE", b.String())
}

// PrintJobAnalysis outputs a human-readable summary of the analyzed job.
func (p *Printer) PrintJobAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", analysis.JobTitle)
	if analysis.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", analysis.CompanyName)
	}
	if analysis.ExperienceLevel != "" {
		fmt.Fprintf(&b, "Level: %s\n", analysis.ExperienceLevel)
	}
	b.WriteString(itemList("Required", analysis.RequiredSkills))
	b.WriteString(itemList("Keywords", analysis.Keywords))
	b.WriteString(itemList("Nice to have", analysis.NiceToHave))

	p.printBox("JOB ANALYSIS", strings.TrimRight(b.String(), "\n"))
}

// PrintMatchResult outputs the keyword match outcome and ATS score.
func (p *Printer) PrintMatchResult(match *types.MatchResult) {
	if match == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ATS score: %.1f%%\n", match.ATSScore)
	fmt.Fprintf(&b, "Matched %d of %d keywords\n", len(match.MatchedKeywords), match.TotalKeywords)
	b.WriteString(itemList("Matched", match.MatchedKeywords))

	p.printBox("ATS OPTIMIZATION", strings.TrimRight(b.String(), "\n"))
}

// itemList formats a capped bullet list, noting how many items were omitted.
func itemList(label string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", label)
	shown := items
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	for _, item := range shown {
		fmt.Fprintf(&b, "  - %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(&b, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	return b.String()
}
