// Package pagefit drives the render, typeset, measure, trim loop that keeps a
// generated resume on a single page. It is a bounded greedy search: each
// failed fit drops the least relevant entries per a fixed schedule, so the
// loop always terminates within MaxIterations.
package pagefit

import (
	"context"
	"sort"

	"github.com/jonathan/resume-builder/internal/types"
)

// MaxIterations bounds the fit loop.
const MaxIterations = 5

// trimSchedule caps the experience and project counts per iteration index.
// Counts only shrink across iterations.
var trimSchedule = [MaxIterations][2]int{{4, 3}, {3, 2}, {2, 2}, {2, 1}, {1, 1}}

// Renderer fills the resume template with the given content selection.
type Renderer interface {
	Render(profile *types.ProfileData, selectedExperiences []types.Experience, selectedProjects []types.Project, prioritizedSkills *types.TechnicalSkills, matchedKeywords []string) (string, error)
}

// Compiler typesets LaTeX source into a PDF.
type Compiler interface {
	Compile(ctx context.Context, source string, baseName string) (pdfPath string, logOutput string, err error)
}

// PageCounter measures a compiled PDF.
type PageCounter interface {
	Count(pdfPath string) (int, error)
}

// Result is the outcome of a fit run. PDFPath is empty when typesetting
// failed; PageCount 0 means the count is unknown. Warning is set when the
// result is usable but not verified to fit on one page.
type Result struct {
	LaTeX       string
	PDFPath     string
	PageCount   int
	Experiences []types.Experience
	Projects    []types.Project
	Iterations  int
	Warning     string
}

// Fitter runs the page-fit loop over injected collaborators.
type Fitter struct {
	Renderer Renderer
	Compiler Compiler
	Counter  PageCounter
}

// Fit renders the resume and shrinks the experience and project lists until
// the compiled PDF fits on one page or the iteration cap is reached.
// Typesetting and measurement failures abort the loop but never fail the
// call: the last rendered LaTeX is always returned.
func (f *Fitter) Fit(
	ctx context.Context,
	baseName string,
	profile *types.ProfileData,
	experiences []types.Experience,
	projects []types.Project,
	skills *types.TechnicalSkills,
	matchedKeywords []string,
) (Result, error) {
	result := Result{}

	for i := 0; i < MaxIterations; i++ {
		result.Iterations = i + 1
		result.Experiences = experiences
		result.Projects = projects

		latex, err := f.Renderer.Render(profile, experiences, projects, skills, matchedKeywords)
		if err != nil {
			if result.LaTeX != "" {
				result.Warning = "render failed mid-fit, keeping previous render"
				return result, nil
			}
			return Result{}, err
		}
		result.LaTeX = latex

		pdfPath, _, err := f.Compiler.Compile(ctx, latex, baseName)
		if err != nil {
			result.PDFPath = ""
			result.PageCount = 0
			result.Warning = "typesetting failed, returning unpaginated document"
			return result, nil
		}
		result.PDFPath = pdfPath

		pages, err := f.Counter.Count(pdfPath)
		if err != nil {
			result.PageCount = 0
			result.Warning = "page count unavailable, accepting current document"
			return result, nil
		}
		result.PageCount = pages

		if pages <= 1 {
			return result, nil
		}

		experiences = topExperiences(experiences, trimSchedule[i][0])
		projects = topProjects(projects, trimSchedule[i][1])
	}

	result.Warning = "document still exceeds one page after trimming"
	return result, nil
}

// topExperiences returns the n highest-scoring experiences. The sort is
// stable so equally scored entries keep their original relative order.
func topExperiences(entries []types.Experience, n int) []types.Experience {
	sorted := make([]types.Experience, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func topProjects(entries []types.Project, n int) []types.Project {
	sorted := make([]types.Project, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
