package agent

import (
	"context"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
)

// domainKeywords are terms whose presence marks a message as on-topic
// without consulting the model. The list errs on the side of acceptance; the
// model only sees genuinely ambiguous messages.
var domainKeywords = []string{
	"resume", "cv", "job", "career", "skill", "experience", "interview",
	"cover letter", "application", "apply", "hire", "hiring", "position",
	"role", "profile", "linkedin", "recruiter", "salary", "employer",
	"qualification", "work", "education", "project", "certification",
	"ats", "keyword",
}

// pastedContentThreshold: anything this long is almost certainly a pasted
// resume or job posting, not chit-chat.
const pastedContentThreshold = 200

const redirectMessage = "I'm here to help you build an ATS-optimized resume. " +
	"Paste your resume or a job description and I'll take it from there."

// onTopic reports whether the message belongs to the resume-building domain.
// It runs the keyword pre-check first and falls back to a model
// classification only for ambiguous input. Classification failures accept
// the message rather than blocking the user.
func (e *Engine) onTopic(ctx context.Context, message string) bool {
	if len(message) >= pastedContentThreshold {
		return true
	}

	folded := strings.ToLower(message)
	for _, keyword := range domainKeywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}

	template, err := prompts.Get("agent.json", "guardrail-classify")
	if err != nil {
		return true
	}
	prompt := prompts.Format(template, map[string]string{"Message": message})

	response, err := e.LLM.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return true
	}
	return !strings.Contains(strings.ToUpper(response), "OFF_TOPIC")
}
