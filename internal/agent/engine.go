package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/matching"
	"github.com/jonathan/resume-builder/internal/pagefit"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// minResumeLength rejects inputs too short to be a real resume.
	minResumeLength = 100
	// minJobLength rejects inputs too short to be a real job posting.
	minJobLength = 100
	// maxEditRounds caps the profile edit loop; after that the last shown
	// profile is accepted.
	maxEditRounds = 5
)

// TurnResult is what the caller gets back from one conversation turn.
type TurnResult struct {
	ThreadID    string      `json:"thread_id"`
	Response    string      `json:"response"`
	Stage       types.Stage `json:"current_stage"`
	ATSScore    *float64    `json:"ats_score,omitempty"`
	LaTeXCode   string      `json:"latex_code,omitempty"`
	PDFPath     string      `json:"pdf_path,omitempty"`
	PDFFilename string      `json:"pdf_filename,omitempty"`
}

// Engine drives the conversation state machine. All collaborators are
// injected; Profiles and Generations may be nil when no database is
// configured, in which case every thread behaves like a guest thread.
type Engine struct {
	LLM         llm.Client
	Profiles    ProfileStore
	Generations GenerationStore
	States      StateStore
	Renderer    pagefit.Renderer
	Compiler    pagefit.Compiler
	Counter     pagefit.PageCounter
	Ingestor    *ingestion.Ingestor
}

// HandleTurn processes one user message for a thread and returns the
// response. A missing threadID starts a new thread. Panics are converted
// into an error-stage result so a turn never faults the caller.
func (e *Engine) HandleTurn(ctx context.Context, threadID, userID string, isGuest bool, message string) (result *TurnResult, err error) {
	if threadID == "" {
		threadID = uuid.New().String()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("turn panic on thread %s: %v", threadID, r)
			result = &TurnResult{
				ThreadID: threadID,
				Stage:    types.StageError,
				Response: "Something went wrong while processing your message. Please try again.",
			}
			err = nil
		}
	}()

	state, err := e.States.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		if isGuest || userID == "" {
			isGuest = true
			userID = "guest_" + threadID
		}
		state = types.NewConversationState(threadID, userID, isGuest)
	}

	// Terminal stages pause for new input; the next message either restarts
	// the flow or, after a completed generation, starts another job. Both
	// are the only resting points where chit-chat shows up, so the guard
	// rail runs here.
	switch state.Stage {
	case types.StageComplete, types.StageError:
		if !e.onTopic(ctx, message) {
			return e.turn(state, redirectMessage), nil
		}
		if state.Stage == types.StageComplete {
			state.Stage = types.StageWaitingForJob
		} else {
			state.Stage = types.StageInit
		}
	}

	switch state.Stage {
	case types.StageInit:
		result = e.initialize(ctx, state)
	case types.StageWaitingForResume:
		result = e.extractProfile(ctx, state, message)
	case types.StageAwaitingConfirmation:
		result = e.handleConfirmation(ctx, state, message)
	case types.StageWaitingForJob:
		result = e.runGenerationChain(ctx, state, message)
	default:
		state.Stage = types.StageInit
		result = e.initialize(ctx, state)
	}

	if saveErr := e.States.Save(ctx, state); saveErr != nil {
		return nil, saveErr
	}
	return result, nil
}

func (e *Engine) turn(state *types.ConversationState, response string) *TurnResult {
	return &TurnResult{
		ThreadID: state.ThreadID,
		Response: response,
		Stage:    state.Stage,
	}
}

// initialize handles the first turn of a thread: guests always start
// unconfirmed; authenticated users skip straight to the job description when
// a complete profile is already on file.
func (e *Engine) initialize(ctx context.Context, state *types.ConversationState) *TurnResult {
	if !state.IsGuest && e.Profiles != nil {
		profile, err := e.Profiles.GetProfile(ctx, state.UserID)
		if err != nil {
			log.Printf("profile lookup failed for user %s: %v", state.UserID, err)
		}
		state.ProfileComplete = profile.Complete()
	}
	state.Stage = types.StageInitialized

	if state.ProfileComplete {
		state.Stage = types.StageWaitingForJob
		return e.turn(state,
			"Welcome back! Your profile is on file.\n\n"+
				"**Step 2:** Paste the job description for the role you're applying to. "+
				"Include the title, requirements, responsibilities and preferred skills. "+
				"The more detail, the better the ATS optimization.")
	}

	state.Stage = types.StageWaitingForResume
	return e.turn(state,
		"Welcome to the resume builder! I'll help you create an ATS-optimized resume tailored to any job.\n\n"+
			"**Step 1:** Paste your resume below. Plain text, LaTeX source, or a detailed "+
			"summary of your experience all work. I'll extract the important information.")
}

// extractProfile turns the pasted resume into a structured profile and asks
// the user to confirm it. Validation and parse failures keep the stage where
// it is.
func (e *Engine) extractProfile(ctx context.Context, state *types.ConversationState, message string) *TurnResult {
	if len(strings.TrimSpace(message)) < minResumeLength {
		return e.turn(state,
			"That's too short. Please paste your full resume (at least 100 characters).")
	}

	state.Stage = types.StageExtracting
	template, err := prompts.Get("agent.json", "extract-profile")
	if err != nil {
		state.Stage = types.StageWaitingForResume
		return e.turn(state, "I couldn't process your resume right now. Please try again.")
	}
	prompt := prompts.Format(template, map[string]string{"ResumeText": message})

	profile, err := e.completeProfile(ctx, prompt)
	if err != nil {
		state.Stage = types.StageWaitingForResume
		return e.turn(state,
			"I couldn't parse your resume. Please paste a text version or try reformatting it.")
	}

	state.ProfileData = profile
	state.Stage = types.StageAwaitingConfirmation
	state.NeedsConfirmation = true
	state.EditRounds = 0

	return e.turn(state, profileSummary(profile)+
		"\n\nDoes this look right? Reply **yes** to confirm, or tell me what to change.")
}

// completeProfile asks the model for a profile, validates the JSON against
// the profile schema, and decodes it.
func (e *Engine) completeProfile(ctx context.Context, prompt string) (*types.ProfileData, error) {
	raw, err := e.LLM.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}
	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateProfile(cleaned); err != nil {
		return nil, err
	}
	var profile types.ProfileData
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// handleConfirmation classifies the user's reply to the shown profile as
// approval or an edit request. Edits re-invoke the model with the current
// profile; after maxEditRounds the last shown profile is accepted.
func (e *Engine) handleConfirmation(ctx context.Context, state *types.ConversationState, message string) *TurnResult {
	template, err := prompts.Get("agent.json", "classify-confirmation")
	if err != nil {
		return e.turn(state, "Reply **yes** to confirm the profile, or describe what to change.")
	}
	prompt := prompts.Format(template, map[string]string{"Reply": message})

	classification, err := e.LLM.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return e.turn(state, "I didn't catch that. Reply **yes** to confirm, or describe what to change.")
	}

	approved := strings.Contains(strings.ToUpper(classification), "APPROVE")
	capped := !approved && state.EditRounds >= maxEditRounds
	if approved || capped {
		return e.confirmProfile(ctx, state, capped)
	}

	state.EditRounds++
	profileJSON, err := json.Marshal(state.ProfileData)
	if err != nil {
		return e.turn(state, "I couldn't apply that change. Reply **yes** to confirm, or try rephrasing.")
	}

	editTemplate, err := prompts.Get("agent.json", "edit-profile")
	if err != nil {
		return e.turn(state, "I couldn't apply that change right now. Reply **yes** to confirm, or try again.")
	}
	editPrompt := prompts.Format(editTemplate, map[string]string{
		"ProfileJSON": string(profileJSON),
		"EditRequest": message,
	})

	updated, err := e.completeProfile(ctx, editPrompt)
	if err != nil {
		return e.turn(state,
			"I couldn't apply that change. The profile is unchanged. "+
				"Reply **yes** to confirm, or try rephrasing your request.")
	}

	state.ProfileData = updated
	return e.turn(state, profileSummary(updated)+
		"\n\nUpdated. Reply **yes** to confirm, or tell me what else to change.")
}

func (e *Engine) confirmProfile(ctx context.Context, state *types.ConversationState, capped bool) *TurnResult {
	if !state.IsGuest && e.Profiles != nil {
		if err := e.Profiles.SaveProfile(ctx, state.UserID, state.ProfileData); err != nil {
			return e.turn(state,
				"I couldn't save your profile just now. Reply **yes** to try again.")
		}
	}
	state.ProfileComplete = true
	state.NeedsConfirmation = false
	state.Stage = types.StageProfileConfirmed

	note := "Profile confirmed!"
	if capped {
		note = "That's the maximum number of edit rounds, so I'm going with the profile as shown."
	}

	state.Stage = types.StageWaitingForJob
	return e.turn(state, note+"\n\n"+
		"**Step 2:** Paste the job description for the role you're applying to. "+
		"Include the title, requirements, responsibilities and preferred skills.")
}

// runGenerationChain executes the analysis, selection, optimization and
// generation stages in one turn. Once a valid job description arrives the
// chain runs to completion without further user input.
func (e *Engine) runGenerationChain(ctx context.Context, state *types.ConversationState, message string) *TurnResult {
	jobText := message
	if e.Ingestor != nil {
		jobText = e.Ingestor.Resolve(ctx, message)
	}
	if len(strings.TrimSpace(jobText)) < minJobLength {
		return e.turn(state,
			"That's too short for a job description. Please paste the full posting.")
	}

	profile, err := e.currentProfile(ctx, state)
	if err != nil || profile == nil {
		state.Stage = types.StageWaitingForResume
		return e.turn(state,
			"I don't have your profile yet. Please paste your resume first.")
	}

	state.JobDescription = jobText
	var sections []string

	state.Stage = types.StageAnalyzingJob
	analysis, err := e.analyzeJob(ctx, jobText)
	if err != nil {
		state.Stage = types.StageWaitingForJob
		return e.turn(state,
			"I couldn't analyze that job description. Please try pasting it again.")
	}
	state.JobAnalysis = analysis
	sections = append(sections, analysisSummary(analysis))

	state.Stage = types.StageSelectingContent
	selectedExp, selectedProj, selectionNote := e.selectContent(ctx, analysis, profile)
	state.SelectedExperiences = selectedExp
	state.SelectedProjects = selectedProj
	sections = append(sections, selectionNote)

	state.Stage = types.StageOptimizingATS
	jobKeywords := analysis.AllKeywords()
	match := matching.Match(profile.TechnicalSkills.All(), jobKeywords)
	prioritized := matching.PrioritizeSkills(profile.TechnicalSkills, jobKeywords)
	state.MatchedKeywords = match.MatchedKeywords
	state.ATSScore = match.ATSScore
	state.PrioritizedSkills = &prioritized
	sections = append(sections, fmt.Sprintf(
		"**ATS Score: %.1f%%** (matched %d of %d keywords)",
		match.ATSScore, len(match.MatchedKeywords), match.TotalKeywords))

	state.Stage = types.StageGeneratingResume
	timestamp := time.Now().Format("20060102_150405")
	baseName := fmt.Sprintf("resume_%s_%s", state.UserID, timestamp)

	fitter := &pagefit.Fitter{Renderer: e.Renderer, Compiler: e.Compiler, Counter: e.Counter}
	fit, err := fitter.Fit(ctx, baseName, profile,
		state.SelectedExperiences, state.SelectedProjects,
		state.PrioritizedSkills, match.KeywordsToBold)
	if err != nil {
		state.Stage = types.StageError
		return e.turn(state,
			"I couldn't render your resume. Please check your profile and try again.")
	}

	state.LaTeXCode = fit.LaTeX
	state.PDFPath = fit.PDFPath
	state.Stage = types.StageComplete

	if fit.PDFPath != "" {
		sections = append(sections, fmt.Sprintf(
			"**Resume generated!** PDF saved as `%s`.", filepath.Base(fit.PDFPath)))
		if fit.Warning != "" {
			sections = append(sections, "Note: "+fit.Warning+".")
		}
	} else {
		sections = append(sections,
			"**Resume generated (LaTeX only).** PDF compilation isn't available here, "+
				"so copy the LaTeX code into a LaTeX editor such as Overleaf to produce the PDF.")
	}

	e.persistGeneration(ctx, state, match.MatchedKeywords)

	score := state.ATSScore
	result := e.turn(state, strings.Join(sections, "\n\n"))
	result.ATSScore = &score
	result.LaTeXCode = fit.LaTeX
	result.PDFPath = fit.PDFPath
	if fit.PDFPath != "" {
		result.PDFFilename = filepath.Base(fit.PDFPath)
	}
	return result
}

// currentProfile resolves the working profile: guests carry it in the
// conversation state, authenticated users in the profile store.
func (e *Engine) currentProfile(ctx context.Context, state *types.ConversationState) (*types.ProfileData, error) {
	if state.IsGuest || e.Profiles == nil {
		return state.ProfileData, nil
	}
	if state.ProfileData != nil {
		return state.ProfileData, nil
	}
	return e.Profiles.GetProfile(ctx, state.UserID)
}

func (e *Engine) analyzeJob(ctx context.Context, jobText string) (*types.JobAnalysis, error) {
	template, err := prompts.Get("agent.json", "analyze-job")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(template, map[string]string{"JobDescription": jobText})

	raw, err := e.LLM.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var analysis types.JobAnalysis
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// contentSelection is the model's ranking response.
type contentSelection struct {
	SelectedExperienceIndices []int  `json:"selected_experience_indices"`
	SelectedProjectIndices    []int  `json:"selected_project_indices"`
	RelevanceScores           struct {
		Experiences []float64 `json:"experiences"`
		Projects    []float64 `json:"projects"`
	} `json:"relevance_scores"`
	Reasoning string `json:"reasoning"`
}

// selectContent asks the model to rank experiences and projects for the
// job. Any failure falls back to all content in original order.
func (e *Engine) selectContent(ctx context.Context, analysis *types.JobAnalysis, profile *types.ProfileData) ([]types.Experience, []types.Project, string) {
	fallback := func() ([]types.Experience, []types.Project, string) {
		return profile.Experience, profile.Projects,
			"Using all experiences and projects in their original order."
	}

	template, err := prompts.Get("agent.json", "select-content")
	if err != nil {
		return fallback()
	}

	analysisJSON, err1 := json.Marshal(analysis)
	expJSON, err2 := json.Marshal(profile.Experience)
	projJSON, err3 := json.Marshal(profile.Projects)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback()
	}

	prompt := prompts.Format(template, map[string]string{
		"JobAnalysisJSON": string(analysisJSON),
		"ExperiencesJSON": string(expJSON),
		"ProjectsJSON":    string(projJSON),
	})

	raw, err := e.LLM.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return fallback()
	}

	var selection contentSelection
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &selection); err != nil {
		return fallback()
	}

	experiences := pickExperiences(profile.Experience, selection.SelectedExperienceIndices, selection.RelevanceScores.Experiences)
	projects := pickProjects(profile.Projects, selection.SelectedProjectIndices, selection.RelevanceScores.Projects)
	if len(experiences) == 0 && len(profile.Experience) > 0 {
		return fallback()
	}

	note := fmt.Sprintf("Selected **%d** experiences and **%d** projects.", len(experiences), len(projects))
	if selection.Reasoning != "" {
		note += " " + selection.Reasoning
	}
	return experiences, projects, note
}

func pickExperiences(all []types.Experience, indices []int, scores []float64) []types.Experience {
	var out []types.Experience
	for pos, idx := range indices {
		if idx < 0 || idx >= len(all) {
			continue
		}
		entry := all[idx]
		if pos < len(scores) {
			entry.RelevanceScore = scores[pos]
		}
		out = append(out, entry)
	}
	return out
}

func pickProjects(all []types.Project, indices []int, scores []float64) []types.Project {
	var out []types.Project
	for pos, idx := range indices {
		if idx < 0 || idx >= len(all) {
			continue
		}
		entry := all[idx]
		if pos < len(scores) {
			entry.RelevanceScore = scores[pos]
		}
		out = append(out, entry)
	}
	return out
}

// persistGeneration records the finished resume for authenticated users.
// Failures are logged, not surfaced: the user already has their resume.
func (e *Engine) persistGeneration(ctx context.Context, state *types.ConversationState, matchedKeywords []string) {
	if state.IsGuest || e.Generations == nil {
		return
	}
	userID, err := uuid.Parse(state.UserID)
	if err != nil {
		log.Printf("generation not persisted, bad user id %q: %v", state.UserID, err)
		return
	}

	gen := &types.Generation{
		UserID:         userID,
		JobDescription: state.JobDescription,
		TailoredContent: types.TailoredContent{
			SelectedExperiences: state.SelectedExperiences,
			SelectedProjects:    state.SelectedProjects,
			PrioritizedSkills:   state.PrioritizedSkills,
		},
		MatchedKeywords: matchedKeywords,
		ATSScore:        state.ATSScore,
		LaTeXCode:       state.LaTeXCode,
		PDFPath:         state.PDFPath,
	}
	if state.JobAnalysis != nil {
		gen.JobTitle = state.JobAnalysis.JobTitle
		gen.CompanyName = state.JobAnalysis.CompanyName
	}

	if err := e.Generations.SaveGeneration(ctx, gen); err != nil {
		log.Printf("failed to persist generation for user %s: %v", state.UserID, err)
	}
}

func profileSummary(profile *types.ProfileData) string {
	return fmt.Sprintf(
		"**Profile extracted!** Here's what I found:\n"+
			"- **Name:** %s\n"+
			"- **%d** work experiences\n"+
			"- **%d** projects\n"+
			"- **%d** education entries\n"+
			"- **%d** skills across all categories",
		profile.Contact.FullName,
		len(profile.Experience),
		len(profile.Projects),
		len(profile.Education),
		len(profile.TechnicalSkills.All()))
}

func analysisSummary(analysis *types.JobAnalysis) string {
	company := analysis.CompanyName
	if company == "" {
		company = "Not specified"
	}
	skills := analysis.RequiredSkills
	if len(skills) > 5 {
		skills = skills[:5]
	}
	return fmt.Sprintf(
		"**Job analysis complete!**\n"+
			"- **Position:** %s\n"+
			"- **Company:** %s\n"+
			"- **Level:** %s\n"+
			"- **Key skills:** %s",
		analysis.JobTitle, company, analysis.ExperienceLevel,
		strings.Join(skills, ", "))
}
