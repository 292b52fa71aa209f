package analysisUtils

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	geminiEndpoint    = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"
	defaultModel      = "gemini-1.5-flash"
	defaultAPITimeout = 20 * time.Second

	// fallback values used whenever the AI service is unreachable or
	// returns something unparseable
	fallbackPollutionScore = 75
	fallbackPollutionText  = "Moderate waste spotted in the uploaded image."
	fallbackCleanupScore   = 45
	fallbackCleanupText    = "Fallback analysis: Unable to determine cleanup quality. Manual verification recommended."
)

// AnalysisResult is the scoring collaborator's verdict on a pollution photo
type AnalysisResult struct {
	Score      int     `json:"score"`
	Analysis   string  `json:"analysis"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// CleanupAnalysisResult is the verdict on an "after" verification photo;
// lower scores mean a cleaner area
type CleanupAnalysisResult struct {
	Score              int    `json:"score"`
	Analysis           string `json:"analysis"`
	CleanupQuality     string `json:"cleanup_quality"`
	RemainingPollution string `json:"remaining_pollution"`
	Recommendations    string `json:"recommendations"`
}

// Analyzer talks to the Gemini generateContent API over plain HTTP.
// It never returns an error to callers: every failure mode degrades to a
// fixed fallback result.
type Analyzer struct {
	apiKey     string
	model      string
	httpClient *http.Client
	available  bool
}

// NewAnalyzer reads GEMINI_API_KEY / GEMINI_MODEL from the environment.
// Without a plausible key the analyzer stays in fallback mode.
func NewAnalyzer() *Analyzer {
	apiKey := os.Getenv("GEMINI_API_KEY")
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	available := len(apiKey) > 20
	if available {
		log.Printf("[Analyzer] Gemini AI enabled with model %s", model)
	} else {
		log.Println("[Analyzer] No valid Gemini API key provided, using fallback analysis")
	}

	return &Analyzer{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: defaultAPITimeout},
		available:  available,
	}
}

// request/response shapes for the generateContent API
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt + image to Gemini and returns the response text
func (a *Analyzer) generate(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error encoding Gemini request: %w", err)
	}

	url := fmt.Sprintf(geminiEndpoint, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling Gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected Gemini status code: %d", resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("error decoding Gemini response: %w", err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty Gemini response")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

const pollutionPrompt = `Analyze this beach image for pollution and waste. Provide a detailed assessment including:

1. Pollution Severity Score (0-100):
   - 0-20: Minimal/No pollution
   - 21-40: Low pollution
   - 41-60: Moderate pollution
   - 61-80: High pollution
   - 81-100: Severe pollution

2. Detailed Analysis:
   - Types of waste visible
   - Pollution density and distribution
   - Environmental impact assessment
   - Cleanup priority level

Format your response as:
SCORE: [number]
ANALYSIS: [detailed description]
OBSERVATIONS: [specific items found]
PRIORITY: [low/medium/high/critical]`

// AnalyzeImage scores a pollution report photo. Any failure degrades to
// the fallback result; callers never see an error.
func (a *Analyzer) AnalyzeImage(ctx context.Context, imageData []byte, mimeType string) AnalysisResult {
	if !a.available || len(imageData) == 0 {
		return FallbackAnalysis()
	}

	text, err := a.generate(ctx, pollutionPrompt, imageData, mimeType)
	if err != nil {
		log.Printf("[Analyzer] Pollution analysis failed: %v", err)
		return FallbackAnalysis()
	}
	return ParsePollutionResponse(text)
}

// ParsePollutionResponse extracts the SCORE/ANALYSIS fields from the
// line-oriented model output
func ParsePollutionResponse(text string) AnalysisResult {
	score := 50
	for _, line := range strings.Split(text, "\n") {
		if idx := strings.Index(line, "SCORE:"); idx != -1 {
			if parsed, err := strconv.Atoi(strings.TrimSpace(line[idx+len("SCORE:"):])); err == nil {
				score = clampScore(parsed)
			}
			break
		}
	}

	analysis := "AI analysis completed successfully."
	var analysisLines []string
	inAnalysis := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.Contains(line, "ANALYSIS:"):
			inAnalysis = true
			analysisLines = append(analysisLines, strings.TrimSpace(line[strings.Index(line, "ANALYSIS:")+len("ANALYSIS:"):]))
		case strings.HasPrefix(line, "OBSERVATIONS:") || strings.HasPrefix(line, "PRIORITY:"):
			inAnalysis = false
		case inAnalysis && strings.TrimSpace(line) != "":
			analysisLines = append(analysisLines, strings.TrimSpace(line))
		}
	}
	if len(analysisLines) > 0 {
		analysis = strings.Join(analysisLines, " ")
	}

	confidence := float64(len(text)) / 1000
	if confidence > 0.95 {
		confidence = 0.95
	}
	if confidence < 0.7 {
		confidence = 0.7
	}

	return AnalysisResult{
		Score:      score,
		Analysis:   analysis,
		Confidence: confidence,
		Source:     "Gemini AI",
	}
}

// FallbackAnalysis is the degraded result used when scoring is unavailable
func FallbackAnalysis() AnalysisResult {
	score := fallbackPollutionScore
	if env := os.Getenv("DEFAULT_ANALYSIS_SCORE"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil {
			score = clampScore(parsed)
		}
	}
	text := os.Getenv("DEFAULT_ANALYSIS_TEXT")
	if text == "" {
		text = fallbackPollutionText
	}
	return AnalysisResult{
		Score:      score,
		Analysis:   text,
		Confidence: 0.5,
		Source:     "Fallback System",
	}
}

const cleanupPrompt = `Analyze this image to assess if a beach/coastal area has been properly cleaned up.
Focus on detecting any remaining pollution, waste, or debris.

Provide a CLEANUP SCORE (0-100) where:
- 0-20: Excellent cleanup - area is very clean
- 21-40: Good cleanup - minor debris remaining
- 41-60: Fair cleanup - some pollution still visible
- 61-80: Poor cleanup - significant pollution remains
- 81-100: Failed cleanup - area still heavily polluted

Format your response as JSON with these fields:
{
    "score": <cleanup_score>,
    "analysis": "<detailed_analysis>",
    "cleanup_quality": "<excellent/good/fair/poor/failed>",
    "remaining_pollution": "<description>",
    "recommendations": "<what_to_do_next>"
}`

// AnalyzeCleanupImage scores an "after" verification photo; lower is
// cleaner. Failures degrade to the fallback cleanup result.
func (a *Analyzer) AnalyzeCleanupImage(ctx context.Context, imageData []byte, mimeType string) CleanupAnalysisResult {
	if !a.available || len(imageData) == 0 {
		return FallbackCleanupAnalysis()
	}

	text, err := a.generate(ctx, cleanupPrompt, imageData, mimeType)
	if err != nil {
		log.Printf("[Analyzer] Cleanup verification analysis failed: %v", err)
		return FallbackCleanupAnalysis()
	}
	return ParseCleanupResponse(text)
}

// ParseCleanupResponse tries the JSON body first and falls back to a
// regex score scrape when the model ignores the format
func ParseCleanupResponse(text string) CleanupAnalysisResult {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		var result CleanupAnalysisResult
		if err := json.Unmarshal([]byte(text[start:end+1]), &result); err == nil {
			result.Score = clampScore(result.Score)
			if result.Analysis == "" {
				result.Analysis = "Analysis completed but details unavailable"
			}
			if result.CleanupQuality == "" {
				result.CleanupQuality = cleanupQuality(result.Score)
			}
			return result
		}
	}
	return scrapeCleanupResponse(text)
}

var scorePattern = regexp.MustCompile(`(\d+)(?:\s*[-/]\s*100)?`)

func scrapeCleanupResponse(text string) CleanupAnalysisResult {
	score := 50
	if match := scorePattern.FindStringSubmatch(text); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil {
			score = clampScore(parsed)
		}
	}

	analysis := text
	if len(analysis) > 500 {
		analysis = analysis[:500] + "..."
	}

	return CleanupAnalysisResult{
		Score:              score,
		Analysis:           analysis,
		CleanupQuality:     cleanupQuality(score),
		RemainingPollution: "Analysis completed but specific details unavailable",
		Recommendations:    "Review the analysis text for detailed recommendations",
	}
}

// FallbackCleanupAnalysis is the degraded verification result; the
// moderate score keeps the task open for manual review
func FallbackCleanupAnalysis() CleanupAnalysisResult {
	return CleanupAnalysisResult{
		Score:              fallbackCleanupScore,
		Analysis:           fallbackCleanupText,
		CleanupQuality:     "fair",
		RemainingPollution: "Unknown - manual verification required",
		Recommendations:    "Submit photos for manual review or retry AI analysis",
	}
}

func cleanupQuality(score int) string {
	switch {
	case score <= 20:
		return "excellent"
	case score <= 40:
		return "good"
	case score <= 60:
		return "fair"
	case score <= 80:
		return "poor"
	default:
		return "failed"
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CalculatePoints converts a pollution severity score into reporter
// points: more pollution means a more urgent, more valuable report
func CalculatePoints(score int) int {
	switch {
	case score < 30:
		return 5
	case score < 50:
		return 10
	case score < 70:
		return 15
	case score < 90:
		return 20
	default:
		return 25
	}
}

// SeverityLevel is the human-readable bucket for a severity score
func SeverityLevel(score int) string {
	switch {
	case score < 30:
		return "Low"
	case score < 50:
		return "Moderate"
	case score < 70:
		return "High"
	case score < 90:
		return "Very High"
	default:
		return "Critical"
	}
}
