package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/rsahil/equityscope/internal/jsonx"
)

// noResultsText substitutes for search output when retrieval fails, so
// the extraction prompt stays well formed.
const noResultsText = "No search results found."

func (p *Pipeline) runFundamentals(ctx context.Context, st *State) error {
	data, err := p.fetchFundamentals(ctx, st.CompanyName, st.Ticker)
	st.FinancialData = data
	return err
}

// fetchFundamentals searches the web for a symbol's financial metrics
// and has the model extract them into the canonical key set with
// currency-normalized values. Parse or inference failure yields the
// all-N/A fallback map, never a partial structure.
func (p *Pipeline) fetchFundamentals(ctx context.Context, companyName, ticker string) (*FinancialData, error) {
	query := fmt.Sprintf("%s stock share price market cap PE ratio revenue net income beta dividend yield 52 week high low volume shares outstanding", ticker)

	searchResults, err := p.deps.Search.Search(ctx, query)
	if err != nil {
		log.Printf("[Fundamentals] search failed for %s: %v", ticker, err)
		searchResults = noResultsText
	}

	raw, err := p.deps.LLM.Infer(ctx, fundamentalsPrompt(companyName, ticker, searchResults))
	if err != nil {
		return fallbackFinancialData(), fmt.Errorf("fundamentals extraction: %w", err)
	}

	var payload struct {
		Metrics map[string]string `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(jsonx.StripCodeFences(raw)), &payload); err != nil {
		return fallbackFinancialData(), fmt.Errorf("fundamentals extraction: %w", err)
	}
	if len(payload.Metrics) == 0 {
		return fallbackFinancialData(), fmt.Errorf("fundamentals extraction: metrics missing from response")
	}

	return &FinancialData{
		Metrics:   payload.Metrics,
		ChartData: placeholderChart(),
	}, nil
}

// placeholderChart returns the fixed 4-year zero-filled series. Search
// snippets carry no statement history, so only the axis is real.
func placeholderChart() ChartData {
	return ChartData{
		Years:     []string{"2021", "2022", "2023", "2024"},
		Revenue:   []float64{0, 0, 0, 0},
		NetIncome: []float64{0, 0, 0, 0},
	}
}

func fallbackFinancialData() *FinancialData {
	metrics := make(map[string]string, len(MetricKeys))
	for _, key := range MetricKeys {
		metrics[key] = "N/A"
	}

	return &FinancialData{Metrics: metrics, ChartData: ChartData{}}
}
