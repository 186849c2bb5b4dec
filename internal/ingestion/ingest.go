// Package ingestion turns a user-supplied job description, either pasted
// text or a job posting URL, into plain text for analysis.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout caps a job posting fetch.
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies our fetches to job boards.
const defaultUserAgent = "Mozilla/5.0 (compatible; ResumeBuilder/1.0)"

// Error represents a failure fetching or extracting a job posting.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Ingestor fetches and extracts job postings. The zero value is usable.
type Ingestor struct {
	Client *http.Client
}

// Resolve returns plain job description text for the given user input. A
// lone URL is fetched and its posting text extracted; anything else, and any
// fetch or extraction failure, yields the input unchanged so a pasted
// description always works.
func (ing *Ingestor) Resolve(ctx context.Context, input string) string {
	urlStr, ok := DetectURL(input)
	if !ok {
		return input
	}

	html, err := ing.fetch(ctx, urlStr)
	if err != nil {
		return input
	}

	text, err := ExtractJobText(html)
	if err != nil || strings.TrimSpace(text) == "" {
		return input
	}
	return text
}

// DetectURL reports whether the input is a single http(s) URL and returns
// its trimmed form.
func DetectURL(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\n") {
		return "", false
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "", false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	return trimmed, true
}

func (ing *Ingestor) fetch(ctx context.Context, urlStr string) (string, error) {
	client := ing.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// jobPostingSelectors are tried in order before falling back to body text.
var jobPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// ExtractJobText parses job posting HTML and returns the posting body text
// with navigation chrome stripped.
func ExtractJobText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range jobPostingSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

var multiSpace = regexp.MustCompile(`[ \t]+`)
var multiNewline = regexp.MustCompile(`\n{3,}`)

func cleanWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
