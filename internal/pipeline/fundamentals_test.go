package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFetchFundamentalsSuccess(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return "```json\n{\"meta\": {\"detected_currency\": \"USD\"}, \"metrics\": {\"Market Cap\": \"3.1T\", \"PE Ratio\": \"35.2\"}}\n```", nil
	}}
	search := &fakeSearch{result: "MSFT market cap 3.1 trillion USD"}
	p := newTestPipeline(Deps{LLM: llm, Search: search})

	data, err := p.fetchFundamentals(context.Background(), "Microsoft", "MSFT")
	if err != nil {
		t.Fatalf("fetchFundamentals: %v", err)
	}
	if data.Metrics["Market Cap"] != "3.1T" {
		t.Fatalf("unexpected metrics: %v", data.Metrics)
	}
	if len(data.ChartData.Years) != 4 || len(data.ChartData.Revenue) != 4 {
		t.Fatalf("expected fixed 4-year placeholder chart, got %+v", data.ChartData)
	}
	for _, v := range data.ChartData.Revenue {
		if v != 0 {
			t.Fatalf("expected zero-filled revenue series, got %+v", data.ChartData.Revenue)
		}
	}

	// Search text must reach the extraction prompt.
	if len(llm.prompts) != 1 || !strings.Contains(llm.prompts[0], search.result) {
		t.Fatal("expected search results embedded in the prompt")
	}
}

func TestFetchFundamentalsFallbackKeySet(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return "The company appears to be doing well overall.", nil
	}}
	p := newTestPipeline(Deps{LLM: llm, Search: &fakeSearch{result: "some text"}})

	data, err := p.fetchFundamentals(context.Background(), "Microsoft", "MSFT")
	if err == nil {
		t.Fatal("expected a degraded-mode reason")
	}

	if len(data.Metrics) != len(MetricKeys) {
		t.Fatalf("expected exactly %d fallback keys, got %d", len(MetricKeys), len(data.Metrics))
	}
	for _, key := range MetricKeys {
		if data.Metrics[key] != "N/A" {
			t.Fatalf("expected N/A for %s, got %q", key, data.Metrics[key])
		}
	}
	if len(data.ChartData.Years) != 0 {
		t.Fatalf("expected empty chart structure, got %+v", data.ChartData)
	}
}

func TestFetchFundamentalsMissingMetrics(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return `{"meta": {"detected_currency": "USD"}}`, nil
	}}
	p := newTestPipeline(Deps{LLM: llm, Search: &fakeSearch{result: "text"}})

	data, err := p.fetchFundamentals(context.Background(), "Microsoft", "MSFT")
	if err == nil {
		t.Fatal("expected a degraded-mode reason for missing metrics")
	}
	if data.Metrics["Market Cap"] != "N/A" {
		t.Fatalf("expected fallback metrics, got %v", data.Metrics)
	}
}

func TestFetchFundamentalsSearchFailurePlaceholder(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return `{"metrics": {"Market Cap": "N/A"}}`, nil
	}}
	search := &fakeSearch{err: errors.New("quota exceeded")}
	p := newTestPipeline(Deps{LLM: llm, Search: search})

	_, err := p.fetchFundamentals(context.Background(), "Microsoft", "MSFT")
	if err != nil {
		t.Fatalf("search failure must not fail the stage: %v", err)
	}
	if !strings.Contains(llm.prompts[0], noResultsText) {
		t.Fatal("expected the no-results placeholder in the prompt")
	}
}

func TestRunFundamentalsWritesState(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return `{"metrics": {"Beta": "1.1"}}`, nil
	}}
	p := newTestPipeline(Deps{LLM: llm, Search: &fakeSearch{result: "text"}})

	st := NewState("Microsoft")
	st.Ticker = "MSFT"
	if err := p.runFundamentals(context.Background(), st); err != nil {
		t.Fatalf("runFundamentals: %v", err)
	}
	if st.FinancialData == nil || st.FinancialData.Metrics["Beta"] != "1.1" {
		t.Fatalf("expected financial data on state, got %+v", st.FinancialData)
	}
}
