package validation

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// PageCounter reports how many pages a PDF has. It prefers pdfinfo (from
// poppler-utils) and falls back to ghostscript when pdfinfo is unavailable.
type PageCounter struct{}

// Count returns the page count of the PDF at pdfPath.
func (PageCounter) Count(pdfPath string) (int, error) {
	if count, err := pdfinfoPages(pdfPath); err == nil {
		return count, nil
	}

	if count, err := ghostscriptPages(pdfPath); err == nil {
		return count, nil
	}

	return 0, &Error{
		Message: "failed to count PDF pages, install poppler-utils (pdfinfo) or ghostscript",
	}
}

func pdfinfoPages(pdfPath string) (int, error) {
	output, err := exec.Command("pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo failed: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			if count, err := strconv.Atoi(fields[1]); err == nil {
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

func ghostscriptPages(pdfPath string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	output, err := exec.Command("gs", "-q", "-dNODISPLAY", "-c", script).Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript failed: %w", err)
	}

	raw := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %q", raw)
	}

	return count, nil
}
