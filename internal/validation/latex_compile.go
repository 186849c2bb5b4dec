package validation

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// PassTimeout caps a single pdflatex invocation. Typesetting a one-to-two
// page resume normally finishes in seconds; the generous ceiling covers cold
// font caches on first run.
const PassTimeout = 2 * time.Minute

// Compiler typesets LaTeX source with pdflatex. A zero-value Compiler writes
// into a fresh temporary directory per call; set OutputDir to keep artifacts
// in a known location.
type Compiler struct {
	OutputDir string
}

// Compile writes source to <baseName>.tex and runs pdflatex over it twice.
// The second pass resolves cross-references so the page count is stable.
// pdflatex under nonstopmode routinely exits nonzero on recoverable errors,
// so success is judged by whether a PDF was produced, not by exit status.
func (c *Compiler) Compile(ctx context.Context, source string, baseName string) (pdfPath string, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompilationError{
			Message: "pdflatex not found in PATH, install a LaTeX distribution (e.g. TeX Live)",
			Cause:   err,
		}
	}

	workDir := c.OutputDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "resume-typeset-*")
		if err != nil {
			return "", "", &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
	} else {
		if err := os.MkdirAll(workDir, 0755); err != nil {
			return "", "", &CompilationError{
				Message: fmt.Sprintf("failed to create working directory: %s", workDir),
				Cause:   err,
			}
		}
	}

	texPath := filepath.Join(workDir, baseName+".tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to write LaTeX source: %s", texPath),
			Cause:   err,
		}
	}

	var runErr error
	for pass := 0; pass < 2; pass++ {
		var passLog string
		passLog, runErr = c.runPdflatex(ctx, workDir, texPath)
		logOutput += passLog
		if ctx.Err() != nil {
			return "", logOutput, &CompilationError{
				Message:   "LaTeX compilation cancelled",
				LogOutput: logOutput,
				Cause:     ctx.Err(),
			}
		}
	}

	pdfPath = filepath.Join(workDir, baseName+".pdf")
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

func (c *Compiler) runPdflatex(ctx context.Context, workDir, texPath string) (string, error) {
	passCtx, cancel := context.WithTimeout(ctx, PassTimeout)
	defer cancel()

	cmd := exec.CommandContext(passCtx, "pdflatex",
		"-interaction=nonstopmode",
		"-output-directory", workDir,
		texPath,
	)

	var out strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// CleanupArtifacts removes the auxiliary files pdflatex leaves next to the
// PDF. The PDF itself is kept.
func CleanupArtifacts(pdfPath string) {
	base := strings.TrimSuffix(pdfPath, ".pdf")
	for _, ext := range []string{".aux", ".log", ".out", ".tex"} {
		_ = os.Remove(base + ext)
	}
}
