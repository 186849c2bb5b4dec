package types

// Stage identifies a point in the conversation state machine. Stage values
// are compared only through these constants.
type Stage string

// Conversation stages, in rough flow order.
const (
	StageInit                   Stage = "init"
	StageInitialized            Stage = "initialized"
	StageWaitingForResume       Stage = "waiting_for_resume"
	StageExtracting             Stage = "extracting_profile"
	StageAwaitingConfirmation   Stage = "awaiting_profile_confirmation"
	StageProfileConfirmed       Stage = "profile_confirmed"
	StageWaitingForJob          Stage = "waiting_for_job_description"
	StageAnalyzingJob           Stage = "analyzing_job"
	StageSelectingContent       Stage = "selecting_content"
	StageOptimizingATS          Stage = "optimizing_ats"
	StageGeneratingResume       Stage = "generating_resume"
	StageComplete               Stage = "complete"
	StageError                  Stage = "error"
)

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	switch s {
	case StageInit, StageInitialized, StageWaitingForResume, StageExtracting,
		StageAwaitingConfirmation, StageProfileConfirmed, StageWaitingForJob,
		StageAnalyzingJob, StageSelectingContent, StageOptimizingATS,
		StageGeneratingResume, StageComplete, StageError:
		return true
	}
	return false
}

// Terminal reports whether the stage ends the current turn.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageError
}

// ConversationState is the per-thread record mutated by each stage function.
// It is created on the first message of a thread and never deleted by the
// core; deletion is a store concern.
type ConversationState struct {
	ThreadID string `json:"thread_id"`
	UserID   string `json:"user_id"`
	IsGuest  bool   `json:"is_guest"`

	Stage             Stage `json:"stage"`
	ProfileComplete   bool  `json:"profile_complete"`
	NeedsConfirmation bool  `json:"needs_confirmation"`
	EditRounds        int   `json:"edit_rounds,omitempty"`

	// ProfileData is populated for guest threads only; authenticated
	// profiles live in the persistence store.
	ProfileData *ProfileData `json:"profile_data,omitempty"`

	JobDescription      string           `json:"job_description,omitempty"`
	JobAnalysis         *JobAnalysis     `json:"job_analysis,omitempty"`
	SelectedExperiences []Experience     `json:"selected_experiences,omitempty"`
	SelectedProjects    []Project        `json:"selected_projects,omitempty"`
	PrioritizedSkills   *TechnicalSkills `json:"prioritized_skills,omitempty"`
	MatchedKeywords     []string         `json:"matched_keywords,omitempty"`
	ATSScore            float64          `json:"ats_score,omitempty"`

	LaTeXCode string `json:"latex_code,omitempty"`
	PDFPath   string `json:"pdf_path,omitempty"`
}

// NewConversationState creates the initial state for a thread.
func NewConversationState(threadID, userID string, isGuest bool) *ConversationState {
	return &ConversationState{
		ThreadID: threadID,
		UserID:   userID,
		IsGuest:  isGuest,
		Stage:    StageInit,
	}
}
