package analysisUtils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePollutionResponse(t *testing.T) {
	text := `SCORE: 72
ANALYSIS: Heavy plastic accumulation along the high tide line.
Several fishing nets tangled in the rocks.
OBSERVATIONS: bottles, nets, styrofoam
PRIORITY: high`

	result := ParsePollutionResponse(text)

	assert.Equal(t, 72, result.Score)
	assert.Contains(t, result.Analysis, "Heavy plastic accumulation")
	assert.Contains(t, result.Analysis, "fishing nets")
	assert.NotContains(t, result.Analysis, "OBSERVATIONS")
	assert.Equal(t, "Gemini AI", result.Source)
	assert.GreaterOrEqual(t, result.Confidence, 0.7)
	assert.LessOrEqual(t, result.Confidence, 0.95)
}

func TestParsePollutionResponseClampsScore(t *testing.T) {
	assert.Equal(t, 100, ParsePollutionResponse("SCORE: 150\nANALYSIS: everything").Score)
	assert.Equal(t, 0, ParsePollutionResponse("SCORE: -5\nANALYSIS: nothing").Score)
}

func TestParsePollutionResponseDefaults(t *testing.T) {
	result := ParsePollutionResponse("the model rambled without any structure")
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, "AI analysis completed successfully.", result.Analysis)
}

func TestFallbackAnalysis(t *testing.T) {
	result := FallbackAnalysis()
	assert.Equal(t, 75, result.Score)
	assert.Equal(t, 0.5, result.Confidence)
	assert.Equal(t, "Fallback System", result.Source)
}

func TestFallbackAnalysisEnvOverride(t *testing.T) {
	t.Setenv("DEFAULT_ANALYSIS_SCORE", "60")
	t.Setenv("DEFAULT_ANALYSIS_TEXT", "Operator supplied default")

	result := FallbackAnalysis()
	assert.Equal(t, 60, result.Score)
	assert.Equal(t, "Operator supplied default", result.Analysis)
}

func TestParseCleanupResponseJSON(t *testing.T) {
	text := `Here is my assessment:
{
    "score": 15,
    "analysis": "Area is almost spotless, only trace debris.",
    "cleanup_quality": "excellent",
    "remaining_pollution": "a few cigarette butts",
    "recommendations": "none"
}`

	result := ParseCleanupResponse(text)
	assert.Equal(t, 15, result.Score)
	assert.Equal(t, "excellent", result.CleanupQuality)
	assert.Contains(t, result.Analysis, "spotless")
}

func TestParseCleanupResponseFillsMissingFields(t *testing.T) {
	result := ParseCleanupResponse(`{"score": 55}`)
	assert.Equal(t, 55, result.Score)
	assert.Equal(t, "fair", result.CleanupQuality)
	assert.NotEmpty(t, result.Analysis)
}

func TestParseCleanupResponseScrapeFallback(t *testing.T) {
	result := ParseCleanupResponse("I would rate this cleanup 35/100, decent effort overall.")
	assert.Equal(t, 35, result.Score)
	assert.Equal(t, "good", result.CleanupQuality)
	assert.Contains(t, result.Analysis, "decent effort")
}

func TestParseCleanupResponseScrapeTruncatesLongText(t *testing.T) {
	long := "score 20 " + strings.Repeat("debris ", 120)
	result := ParseCleanupResponse(long)
	assert.Equal(t, 20, result.Score)
	assert.True(t, strings.HasSuffix(result.Analysis, "..."))
	assert.LessOrEqual(t, len(result.Analysis), 503)
}

func TestFallbackCleanupAnalysisStaysOpen(t *testing.T) {
	result := FallbackCleanupAnalysis()
	assert.Equal(t, 45, result.Score)
	assert.Equal(t, "fair", result.CleanupQuality)
}

func TestCalculatePoints(t *testing.T) {
	cases := []struct {
		score  int
		points int
	}{
		{0, 5}, {29, 5},
		{30, 10}, {49, 10},
		{50, 15}, {69, 15},
		{70, 20}, {89, 20},
		{90, 25}, {100, 25},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.points, CalculatePoints(tc.score), "score %d", tc.score)
	}
}

func TestSeverityLevel(t *testing.T) {
	assert.Equal(t, "Low", SeverityLevel(10))
	assert.Equal(t, "Moderate", SeverityLevel(40))
	assert.Equal(t, "High", SeverityLevel(60))
	assert.Equal(t, "Very High", SeverityLevel(82))
	assert.Equal(t, "Critical", SeverityLevel(95))
}
