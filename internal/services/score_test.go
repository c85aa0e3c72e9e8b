package services

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want int
	}{
		{"percentage scale", 85, 9},
		{"full percentage", 100, 10},
		{"zero clamps to minimum", 0, 1},
		{"already on gauge", 7, 7},
		{"upper bound of gauge", 10, 10},
		{"just above gauge", 10.5, 1},
		{"fraction rounds", 7.6, 8},
		{"negative", -3, 1},
		{"over a hundred", 250, 10},
		{"not a number", math.NaN(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeScore(tt.raw))
		})
	}
}

func TestNormalizeMetrics_Defaults(t *testing.T) {
	scores := NormalizeMetrics(AnalysisMetrics, map[string]any{
		"formatting":     85.0,
		"contentQuality": 0.0,
		"keywordUsage":   "not a number",
	})
	require.Len(t, scores, len(AnalysisMetrics))

	byKey := map[string]models.MetricScore{}
	for _, s := range scores {
		byKey[s.Key] = s
	}

	assert.Equal(t, 9, byKey["formatting"].Score)
	assert.False(t, byKey["formatting"].Defaulted)

	// A present zero is a value, not a missing metric.
	assert.Equal(t, 1, byKey["contentQuality"].Score)
	assert.False(t, byKey["contentQuality"].Defaulted)

	assert.Equal(t, 5, byKey["keywordUsage"].Score)
	assert.True(t, byKey["keywordUsage"].Defaulted)

	assert.Equal(t, 6, byKey["atsCompatibility"].Score)
	assert.Equal(t, 4, byKey["quantifiableAchievements"].Score)
	assert.True(t, byKey["quantifiableAchievements"].Defaulted)
}

func TestNormalizeMetrics_KeepsDefinitionOrder(t *testing.T) {
	scores := NormalizeMetrics(MatchMetrics, nil)

	for i, def := range MatchMetrics {
		assert.Equal(t, def.Key, scores[i].Key)
		assert.Equal(t, def.Label, scores[i].Label)
		assert.Equal(t, 5, scores[i].Score)
		assert.Equal(t, "fair", scores[i].Band)
	}
}

func TestNumericValue(t *testing.T) {
	cases := map[string]struct {
		in   any
		want float64
		ok   bool
	}{
		"float":       {7.5, 7.5, true},
		"int":         {8, 8, true},
		"json number": {json.Number("6"), 6, true},
		"fraction":    {"8/10", 8, true},
		"percent":     {"85%", 85, true},
		"text":        {"great", 0, false},
		"nil":         {nil, 0, false},
		"bool":        {true, 0, false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := numericValue(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 0.0001)
			}
		})
	}
}

func TestMatchLevelFor(t *testing.T) {
	assert.Equal(t, models.MatchExcellent, MatchLevelFor(80))
	assert.Equal(t, models.MatchGood, MatchLevelFor(79))
	assert.Equal(t, models.MatchGood, MatchLevelFor(60))
	assert.Equal(t, models.MatchFair, MatchLevelFor(40))
	assert.Equal(t, models.MatchPoor, MatchLevelFor(39))
}

func TestNormalizeAnalysis(t *testing.T) {
	var raw models.RawAnalysis
	require.NoError(t, json.Unmarshal([]byte(`{
		"overallScore": 8,
		"strengths": ["clear layout"],
		"summary": "Solid resume",
		"performanceMetrics": {"formatting": 90, "contentQuality": 7, "atsCompatibility": "6/10"}
	}`), &raw))

	result := NormalizeAnalysis(&raw)

	assert.Equal(t, "8", result.OverallScore)
	assert.Equal(t, "Solid resume", result.Summary)
	assert.Equal(t, []string{"clear layout"}, result.Strengths)
	assert.Equal(t, []string{}, result.Improvements)

	require.Len(t, result.PerformanceMetrics, 5)
	assert.Equal(t, 9, result.PerformanceMetrics[0].Score)
	assert.Equal(t, 7, result.PerformanceMetrics[1].Score)
	assert.Equal(t, 6, result.PerformanceMetrics[2].Score)
	assert.True(t, result.PerformanceMetrics[3].Defaulted)
}

func TestNormalizeMatch(t *testing.T) {
	t.Run("derives level from percentage", func(t *testing.T) {
		result := NormalizeMatch(&models.RawMatch{
			MatchPercentage: 72.4,
			MatchLevel:      "outstanding",
			ExperienceMatch: &models.RawSubScore{Score: 70.0, Feedback: "close"},
			DetailedBreakdown: map[string]any{
				"technicalSkills": 8.0,
			},
		})

		assert.Equal(t, 72, result.MatchPercentage)
		assert.Equal(t, models.MatchGood, result.MatchLevel)
		require.NotNil(t, result.ExperienceMatch)
		assert.Equal(t, 7, result.ExperienceMatch.Score)
		assert.Nil(t, result.EducationMatch)
		assert.Equal(t, 8, result.DetailedBreakdown[0].Score)
		assert.Equal(t, 5, result.DetailedBreakdown[1].Score)
	})

	t.Run("keeps a valid level", func(t *testing.T) {
		result := NormalizeMatch(&models.RawMatch{MatchPercentage: "45%", MatchLevel: "Excellent"})
		assert.Equal(t, 45, result.MatchPercentage)
		assert.Equal(t, models.MatchExcellent, result.MatchLevel)
	})

	t.Run("clamps percentage", func(t *testing.T) {
		result := NormalizeMatch(&models.RawMatch{MatchPercentage: 140.0})
		assert.Equal(t, 100, result.MatchPercentage)
		assert.Equal(t, models.MatchExcellent, result.MatchLevel)
	})

	t.Run("nil payload", func(t *testing.T) {
		result := NormalizeMatch(nil)
		assert.Equal(t, 0, result.MatchPercentage)
		assert.Equal(t, models.MatchPoor, result.MatchLevel)
		assert.Len(t, result.DetailedBreakdown, len(MatchMetrics))
	})
}
