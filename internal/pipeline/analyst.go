package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rsahil/equityscope/internal/jsonx"
)

func (p *Pipeline) runAnalyst(ctx context.Context, st *State) error {
	report, err := p.synthesizeReport(ctx, st)
	st.FinalReport = report
	return err
}

// synthesizeReport combines all upstream stage outputs into the final
// report. Total by construction: any failure yields the neutral
// fallback report instead.
func (p *Pipeline) synthesizeReport(ctx context.Context, st *State) (*Report, error) {
	raw, err := p.deps.LLM.Infer(ctx, analystPrompt(st))
	if err != nil {
		return fallbackReport(st), fmt.Errorf("report synthesis: %w", err)
	}

	obj, err := jsonx.ExtractObject(raw)
	if err != nil {
		return fallbackReport(st), fmt.Errorf("report synthesis: %w", err)
	}

	var parsed rawReport
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return fallbackReport(st), fmt.Errorf("report synthesis: %w", err)
	}

	return parsed.toReport(), nil
}

// rawReport mirrors the model's output shape. Models regularly emit
// the company details under a misspelled "companies_details" key, so
// both spellings are accepted.
type rawReport struct {
	Recommendation   string          `json:"recommendation"`
	SentimentScore   int             `json:"sentiment_score"`
	ConfidenceScore  int             `json:"confidence_score"`
	Volatility       string          `json:"volatility"`
	Swot             Swot            `json:"swot"`
	CompanyDetails   *CompanyDetails `json:"company_details"`
	CompaniesDetails *CompanyDetails `json:"companies_details"`
	Summary          string          `json:"summary"`
}

// toReport normalizes the decoded response: canonical details key,
// recommendation forced into the BUY/SELL/HOLD set, scores clamped to
// [0,100], and every free-text field scrubbed of markdown markers the
// model was told not to emit but emits anyway.
func (r *rawReport) toReport() *Report {
	details := r.CompanyDetails
	if details == nil {
		details = r.CompaniesDetails
	}
	if details == nil {
		details = &CompanyDetails{}
	}

	cleaned := *details
	cleaned.CEO = cleanText(cleaned.CEO)
	cleaned.Founded = cleanText(cleaned.Founded)
	cleaned.Industry = cleanText(cleaned.Industry)
	cleaned.Sector = cleanText(cleaned.Sector)
	cleaned.applyDefaults()

	return &Report{
		Recommendation:  normalizeRecommendation(r.Recommendation),
		SentimentScore:  clampScore(r.SentimentScore),
		ConfidenceScore: clampScore(r.ConfidenceScore),
		Volatility:      cleanText(r.Volatility),
		Swot: Swot{
			Strengths:     cleanList(r.Swot.Strengths),
			Weaknesses:    cleanList(r.Swot.Weaknesses),
			Opportunities: cleanList(r.Swot.Opportunities),
			Threats:       cleanList(r.Swot.Threats),
		},
		CompanyDetails: cleaned,
		Summary:        cleanText(r.Summary),
	}
}

// fallbackReport is the fixed neutral report for failed synthesis. The
// raw fundamentals and news are echoed back so a consumer can still see
// what the analysis would have been based on.
func fallbackReport(st *State) *Report {
	report := &Report{
		Recommendation:  RecommendHold,
		SentimentScore:  50,
		ConfidenceScore: 0,
		Summary:         "Analysis failed. Please try again.",
		Swot: Swot{
			Strengths:     []string{},
			Weaknesses:    []string{},
			Opportunities: []string{},
			Threats:       []string{},
		},
		CompanyDetails: CompanyDetails{
			CEO:      detailsFallback,
			Founded:  detailsFallback,
			Industry: detailsFallback,
			Sector:   detailsFallback,
		},
	}

	if st.FinancialData != nil {
		report.Fundamentals = st.FinancialData.Metrics
	}
	if st.NewsData != nil {
		report.News = st.NewsData
	}

	return report
}

var markdownScrubber = strings.NewReplacer("**", "", "*", "", "#", "", "_", "")

// cleanText strips markdown emphasis, heading, and underscore markers.
// Idempotent: cleaning already-clean text is a no-op.
func cleanText(s string) string {
	return strings.TrimSpace(markdownScrubber.Replace(s))
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		cleaned = append(cleaned, cleanText(item))
	}
	return cleaned
}

func normalizeRecommendation(rec string) string {
	switch strings.ToUpper(strings.TrimSpace(rec)) {
	case RecommendBuy:
		return RecommendBuy
	case RecommendSell:
		return RecommendSell
	default:
		return RecommendHold
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
