package models

import "time"

type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateExtracting SessionState = "extracting"
	StateEvaluating SessionState = "evaluating"
	StateDisplaying SessionState = "displaying"
	StateFailed     SessionState = "failed"
)

// Busy reports whether a submission is in flight.
func (s SessionState) Busy() bool {
	return s == StateExtracting || s == StateEvaluating
}

type Mode string

const (
	ModeAnalyzer Mode = "analyzer"
	ModeMatcher  Mode = "matcher"
)

func (m Mode) IsValid() bool {
	return m == ModeAnalyzer || m == ModeMatcher
}

type ChecklistItem struct {
	Label   string `json:"label"`
	Present bool   `json:"present"`
}

// SessionSnapshot is a copy of the orchestrator's working state, safe to
// hand to other goroutines.
type SessionSnapshot struct {
	State        SessionState    `json:"state"`
	SubmissionID string          `json:"submission_id,omitempty"`
	FileName     string          `json:"file_name,omitempty"`
	Mode         Mode            `json:"mode,omitempty"`
	ResumeText   string          `json:"resume_text,omitempty"`
	Checklist    []ChecklistItem `json:"checklist,omitempty"`
	Analysis     *AnalysisResult `json:"analysis,omitempty"`
	Match        *MatchResult    `json:"match,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
