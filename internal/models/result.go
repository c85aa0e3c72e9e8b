package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// FlexString accepts either a JSON string or a bare JSON number and keeps its
// text form. The analysis backend sends overallScore as "8/10" or as 8.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

// Backend wire types.

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

type AnalyzeRequest struct {
	ResumeText string `json:"resumeText"`
	Prompt     string `json:"prompt"`
}

type MatchRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	Prompt         string `json:"prompt"`
}

type BackendResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RawAnalysis is the analyzer payload as returned by the backend. Metric
// values are left untyped because the backend does not guarantee numbers.
type RawAnalysis struct {
	Error              string         `json:"error,omitempty"`
	OverallScore       FlexString     `json:"overallScore"`
	Strengths          []string       `json:"strengths"`
	Improvements       []string       `json:"improvements"`
	Keywords           []string       `json:"keywords"`
	Summary            string         `json:"summary"`
	PerformanceMetrics map[string]any `json:"performanceMetrics"`
	ActionItems        []string       `json:"actionItems"`
	ProTips            []string       `json:"proTips"`
	ATSChecklist       []string       `json:"atsChecklist"`
}

type RawSubScore struct {
	Score    any    `json:"score"`
	Feedback string `json:"feedback"`
}

type RawMatch struct {
	Error                string         `json:"error,omitempty"`
	MatchPercentage      any            `json:"matchPercentage"`
	MatchLevel           string         `json:"matchLevel"`
	ExecutiveSummary     string         `json:"executiveSummary"`
	OverallAssessment    string         `json:"overallAssessment"`
	MatchingSkills       []string       `json:"matchingSkills"`
	MissingSkills        []string       `json:"missingSkills"`
	MatchingKeywords     []string       `json:"matchingKeywords"`
	MissingKeywords      []string       `json:"missingKeywords"`
	ExperienceMatch      *RawSubScore   `json:"experienceMatch"`
	EducationMatch       *RawSubScore   `json:"educationMatch"`
	Recommendations      []string       `json:"recommendations"`
	StrengthsForThisJob  []string       `json:"strengthsForThisJob"`
	WeaknessesForThisJob []string       `json:"weaknessesForThisJob"`
	DetailedBreakdown    map[string]any `json:"detailedBreakdown"`
}

// Display types. Every score in them is already normalized to 1-10.

type MetricScore struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Score     int    `json:"score"`
	Band      string `json:"band"`
	Defaulted bool   `json:"defaulted"`
}

type AnalysisResult struct {
	OverallScore       string        `json:"overall_score"`
	Summary            string        `json:"summary"`
	Strengths          []string      `json:"strengths"`
	Improvements       []string      `json:"improvements"`
	Keywords           []string      `json:"keywords"`
	PerformanceMetrics []MetricScore `json:"performance_metrics"`
	ActionItems        []string      `json:"action_items"`
	ProTips            []string      `json:"pro_tips"`
	ATSChecklist       []string      `json:"ats_checklist"`
}

type MatchLevel string

const (
	MatchExcellent MatchLevel = "excellent"
	MatchGood      MatchLevel = "good"
	MatchFair      MatchLevel = "fair"
	MatchPoor      MatchLevel = "poor"
)

type SubScore struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type MatchResult struct {
	MatchPercentage      int           `json:"match_percentage"`
	MatchLevel           MatchLevel    `json:"match_level"`
	ExecutiveSummary     string        `json:"executive_summary"`
	OverallAssessment    string        `json:"overall_assessment"`
	MatchingSkills       []string      `json:"matching_skills"`
	MissingSkills        []string      `json:"missing_skills"`
	MatchingKeywords     []string      `json:"matching_keywords"`
	MissingKeywords      []string      `json:"missing_keywords"`
	ExperienceMatch      *SubScore     `json:"experience_match,omitempty"`
	EducationMatch       *SubScore     `json:"education_match,omitempty"`
	DetailedBreakdown    []MetricScore `json:"detailed_breakdown"`
	StrengthsForThisJob  []string      `json:"strengths_for_this_job"`
	WeaknessesForThisJob []string      `json:"weaknesses_for_this_job"`
	Recommendations      []string      `json:"recommendations"`
}

// API types served by cmd/api.

type HealthStatus struct {
	Status       string    `json:"status"`
	BackendReady bool      `json:"backend_ready"`
	Time         time.Time `json:"time"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
