package ai

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"google.golang.org/genai"

	"fintrack-server/src/analysis"
	"fintrack-server/src/models"
)

// DefaultModel is the Gemini model used when GEMINI_MODEL is not set.
const DefaultModel = "gemini-2.0-flash"

const systemInstruction = "You are a financial advisor helping users understand their spending."

// Default saving-area suggestions, used when the model response contains no
// bullet items.
var genericSavingAreas = []string{
	"Reduce dining out",
	"Cancel unused subscriptions",
	"Set category budgets",
}

// HeuristicSummarizer produces a deterministic templated summary from the
// aggregated figures alone. It is both the no-API-key implementation and the
// fallback for the Gemini one.
type HeuristicSummarizer struct{}

func (HeuristicSummarizer) Summarize(_ context.Context, _ int, totals map[models.Category]float64, total float64) (analysis.SummaryResult, error) {
	top := analysis.TopCategories(totals, 3)

	names := make([]string, len(top))
	for i, entry := range top {
		names[i] = string(entry.Category)
	}

	topName := "your top"
	if len(top) > 0 {
		topName = string(top[0].Category)
	}

	return analysis.SummaryResult{
		SpendingSummary: fmt.Sprintf(
			"Your spending is distributed across %d categories. Focus on reducing %s to save more.",
			len(totals), strings.Join(names, ", ")),
		SavingAreas: []string{
			fmt.Sprintf("Review %s spending", topName),
			"Cancel unused subscriptions",
			"Reduce dining out frequency",
		},
		MonthlySavingGoal: math.Round(total * 0.10),
	}, nil
}

// GeminiSummarizer asks a Gemini model for the spending summary. Every failure
// mode (missing key, client construction, call error, empty response) yields
// the heuristic result instead of an error: analysis generation must never
// fail because the model is unavailable.
type GeminiSummarizer struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	fallback HeuristicSummarizer
}

func NewGeminiSummarizer(apiKey, model string, timeout time.Duration) *GeminiSummarizer {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiSummarizer{APIKey: apiKey, Model: model, Timeout: timeout}
}

func (s *GeminiSummarizer) Summarize(ctx context.Context, txCount int, totals map[models.Category]float64, total float64) (analysis.SummaryResult, error) {
	if s.APIKey == "" {
		return s.fallback.Summarize(ctx, txCount, totals, total)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      s.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		log.Printf("ERROR: Failed to create Gemini client, using heuristic summary: %v", err)
		return s.fallback.Summarize(ctx, txCount, totals, total)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildPrompt(txCount, totals, total)}},
		},
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		MaxOutputTokens:   300,
	}

	resp, err := client.Models.GenerateContent(ctx, s.Model, contents, config)
	if err != nil {
		log.Printf("ERROR: Gemini call failed, using heuristic summary: %v", err)
		return s.fallback.Summarize(ctx, txCount, totals, total)
	}

	raw := resp.Text()
	if strings.TrimSpace(raw) == "" {
		log.Printf("ERROR: Empty Gemini response, using heuristic summary")
		return s.fallback.Summarize(ctx, txCount, totals, total)
	}

	return parseAnalysisText(raw, total), nil
}

func buildPrompt(txCount int, totals map[models.Category]float64, total float64) string {
	top := analysis.TopCategories(totals, 5)

	entries := make([]string, len(top))
	for i, entry := range top {
		entries[i] = fmt.Sprintf("%s: $%.2f", entry.Category, entry.Amount)
	}

	return fmt.Sprintf(`Analyze this personal spending data and provide insights:
Total Spending: $%.2f
Top Categories: %s
Number of transactions: %d

Please provide:
1. A brief 2-3 sentence summary of spending pattern
2. 2-3 areas where they could cut spending
3. A suggested monthly saving goal (10-15%% of total spending)

Keep the response concise and actionable.`,
		total, strings.Join(entries, ", "), txCount)
}

// parseAnalysisText splits the model response into non-empty lines, takes the
// first three as the summary and scans all lines for bullet items as saving
// areas. The saving goal stays a fixed 12% of total spending regardless of
// whatever figure the model suggested.
func parseAnalysisText(raw string, total float64) analysis.SummaryResult {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	summaryLines := lines
	if len(summaryLines) > 3 {
		summaryLines = summaryLines[:3]
	}

	return analysis.SummaryResult{
		SpendingSummary:   strings.Join(summaryLines, " "),
		SavingAreas:       extractSavingAreas(lines),
		MonthlySavingGoal: math.Round(total * 0.12),
	}
}

var bulletPattern = regexp.MustCompile(`[-•*]\s*(.+)`)

func extractSavingAreas(lines []string) []string {
	var areas []string
	for _, line := range lines {
		if match := bulletPattern.FindStringSubmatch(line); match != nil && len(areas) < 3 {
			areas = append(areas, strings.TrimSpace(match[1]))
		}
	}
	if len(areas) == 0 {
		return append([]string(nil), genericSavingAreas...)
	}
	return areas
}
