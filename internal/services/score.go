package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	MinScore = 1
	MaxScore = 10
)

type MetricDefinition struct {
	Key     string
	Label   string
	Default int
}

// AnalysisMetrics are the performanceMetrics keys of an analyzer result.
var AnalysisMetrics = []MetricDefinition{
	{Key: "formatting", Label: "Formatting", Default: 7},
	{Key: "contentQuality", Label: "Content Quality", Default: 6},
	{Key: "atsCompatibility", Label: "ATS Compatibility", Default: 6},
	{Key: "keywordUsage", Label: "Keyword Usage", Default: 5},
	{Key: "quantifiableAchievements", Label: "Quantified Results", Default: 4},
}

// MatchMetrics are the detailedBreakdown keys of a matcher result.
var MatchMetrics = []MetricDefinition{
	{Key: "technicalSkills", Label: "Technical Skills", Default: 5},
	{Key: "softSkills", Label: "Soft Skills", Default: 5},
	{Key: "experience", Label: "Experience Level", Default: 5},
	{Key: "education", Label: "Education", Default: 5},
	{Key: "certifications", Label: "Certifications", Default: 5},
}

// NormalizeScore maps a metric to the 1-10 gauge. Values above 10 are
// taken to be on a 0-100 scale and divided by ten first.
func NormalizeScore(raw float64) int {
	if math.IsNaN(raw) {
		return MinScore
	}
	if raw > MaxScore {
		raw = raw / 10
	}
	raw = math.Round(raw)

	switch {
	case raw < MinScore:
		return MinScore
	case raw > MaxScore:
		return MaxScore
	default:
		return int(raw)
	}
}

func ScoreBand(score int) string {
	switch {
	case score >= 8:
		return "strong"
	case score >= 6:
		return "good"
	case score >= 4:
		return "fair"
	default:
		return "weak"
	}
}

func MatchLevelFor(percentage float64) models.MatchLevel {
	switch {
	case percentage >= 80:
		return models.MatchExcellent
	case percentage >= 60:
		return models.MatchGood
	case percentage >= 40:
		return models.MatchFair
	default:
		return models.MatchPoor
	}
}

// numericValue reads a JSON-decoded value as a number. Numeric strings are
// accepted, including the "8/10" form.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if i := strings.Index(s, "/"); i > 0 {
			s = strings.TrimSpace(s[:i])
		}
		s = strings.TrimSuffix(s, "%")
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// NormalizeMetrics resolves every defined metric from raw. A missing or
// non-numeric value takes the definition's default.
func NormalizeMetrics(defs []MetricDefinition, raw map[string]any) []models.MetricScore {
	scores := make([]models.MetricScore, len(defs))
	for i, def := range defs {
		score := models.MetricScore{
			Key:       def.Key,
			Label:     def.Label,
			Score:     def.Default,
			Defaulted: true,
		}
		if v, ok := raw[def.Key]; ok {
			if f, ok := numericValue(v); ok {
				score.Score = NormalizeScore(f)
				score.Defaulted = false
			}
		}
		score.Band = ScoreBand(score.Score)
		scores[i] = score
	}
	return scores
}

func NormalizeAnalysis(raw *models.RawAnalysis) *models.AnalysisResult {
	if raw == nil {
		raw = &models.RawAnalysis{}
	}
	return &models.AnalysisResult{
		OverallScore:       strings.TrimSpace(string(raw.OverallScore)),
		Summary:            raw.Summary,
		Strengths:          orEmpty(raw.Strengths),
		Improvements:       orEmpty(raw.Improvements),
		Keywords:           orEmpty(raw.Keywords),
		PerformanceMetrics: NormalizeMetrics(AnalysisMetrics, raw.PerformanceMetrics),
		ActionItems:        orEmpty(raw.ActionItems),
		ProTips:            orEmpty(raw.ProTips),
		ATSChecklist:       orEmpty(raw.ATSChecklist),
	}
}

func NormalizeMatch(raw *models.RawMatch) *models.MatchResult {
	if raw == nil {
		raw = &models.RawMatch{}
	}

	percentage, _ := numericValue(raw.MatchPercentage)
	percentage = math.Max(0, math.Min(100, math.Round(percentage)))
	if math.IsNaN(percentage) {
		percentage = 0
	}

	level := models.MatchLevel(strings.ToLower(strings.TrimSpace(raw.MatchLevel)))
	switch level {
	case models.MatchExcellent, models.MatchGood, models.MatchFair, models.MatchPoor:
	default:
		level = MatchLevelFor(percentage)
	}

	return &models.MatchResult{
		MatchPercentage:      int(percentage),
		MatchLevel:           level,
		ExecutiveSummary:     raw.ExecutiveSummary,
		OverallAssessment:    raw.OverallAssessment,
		MatchingSkills:       orEmpty(raw.MatchingSkills),
		MissingSkills:        orEmpty(raw.MissingSkills),
		MatchingKeywords:     orEmpty(raw.MatchingKeywords),
		MissingKeywords:      orEmpty(raw.MissingKeywords),
		ExperienceMatch:      normalizeSubScore(raw.ExperienceMatch),
		EducationMatch:       normalizeSubScore(raw.EducationMatch),
		DetailedBreakdown:    NormalizeMetrics(MatchMetrics, raw.DetailedBreakdown),
		StrengthsForThisJob:  orEmpty(raw.StrengthsForThisJob),
		WeaknessesForThisJob: orEmpty(raw.WeaknessesForThisJob),
		Recommendations:      orEmpty(raw.Recommendations),
	}
}

func normalizeSubScore(raw *models.RawSubScore) *models.SubScore {
	if raw == nil {
		return nil
	}
	sub := &models.SubScore{Feedback: raw.Feedback, Score: MinScore}
	if f, ok := numericValue(raw.Score); ok {
		sub.Score = NormalizeScore(f)
	}
	return sub
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
