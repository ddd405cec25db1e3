package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rsahil/equityscope/internal/dataflows"
)

func TestFetchNewsSuccess(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return "```json\n{\"summary\": \"Earnings beat expectations.\", \"impact_level\": \"high\"}\n```", nil
	}}
	news := &fakeNews{items: []*dataflows.NewsItem{
		{
			Title:       "Microsoft tops Q4 estimates",
			Source:      "Reuters",
			Summary:     "Cloud revenue drove the beat.",
			PublishedAt: time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC),
		},
	}}
	p := newTestPipeline(Deps{LLM: llm, News: news})

	digest, err := p.fetchNews(context.Background(), "Microsoft", "MSFT")
	if err != nil {
		t.Fatalf("fetchNews: %v", err)
	}
	if digest.Summary != "Earnings beat expectations." {
		t.Fatalf("unexpected summary %q", digest.Summary)
	}
	if digest.ImpactLevel != ImpactHigh {
		t.Fatalf("expected normalized impact, got %q", digest.ImpactLevel)
	}

	prompt := llm.prompts[0]
	if !strings.Contains(prompt, "[Jul 30, 2025] Microsoft tops Q4 estimates (Reuters)") {
		t.Fatalf("expected formatted item in prompt, got %q", prompt)
	}
}

func TestFetchNewsFeedFallsBackToSearch(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return `{"summary": "ok", "impact_level": "LOW"}`, nil
	}}
	fallback := &fakeNewsSearch{items: []*dataflows.NewsItem{
		{Title: "Analysts weigh in", Source: "CNBC", Summary: "Mixed views."},
	}}
	p := newTestPipeline(Deps{
		LLM:          llm,
		News:         &fakeNews{err: errors.New("feed unavailable")},
		NewsFallback: fallback,
	})

	digest, err := p.fetchNews(context.Background(), "Microsoft", "MSFT")
	if err != nil {
		t.Fatalf("fetchNews: %v", err)
	}
	if digest.ImpactLevel != ImpactLow {
		t.Fatalf("expected LOW impact, got %q", digest.ImpactLevel)
	}
	if !strings.Contains(llm.prompts[0], "Analysts weigh in") {
		t.Fatal("expected fallback items in prompt")
	}
}

func TestFetchNewsNoItemsUsesEmptyContext(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return `{"summary": "No significant market-moving news.", "impact_level": "LOW"}`, nil
	}}
	p := newTestPipeline(Deps{
		LLM:          llm,
		News:         &fakeNews{},
		NewsFallback: &fakeNewsSearch{err: errors.New("blocked")},
	})

	if _, err := p.fetchNews(context.Background(), "Microsoft", "MSFT"); err != nil {
		t.Fatalf("fetchNews: %v", err)
	}
	if !strings.Contains(llm.prompts[0], emptyNewsContext) {
		t.Fatal("expected empty-context placeholder in prompt")
	}
}

func TestFetchNewsSynthesisFailure(t *testing.T) {
	llm := &fakeLLM{respond: func(string) (string, error) {
		return "plain prose, no json", nil
	}}
	p := newTestPipeline(Deps{LLM: llm, News: &fakeNews{}})

	digest, err := p.fetchNews(context.Background(), "Microsoft", "MSFT")
	if err == nil {
		t.Fatal("expected a degraded-mode reason")
	}
	if !strings.HasPrefix(digest.Summary, "News synthesis failed:") {
		t.Fatalf("expected failure summary, got %q", digest.Summary)
	}
	if digest.ImpactLevel != "" {
		t.Fatalf("expected no impact on failure, got %q", digest.ImpactLevel)
	}
}

func TestFormatNewsContextTruncatesLongSummaries(t *testing.T) {
	long := strings.Repeat("国", maxNewsSummaryChars+50)
	out := formatNewsContext([]*dataflows.NewsItem{
		{Title: "Filing", Source: "SEC", Summary: long},
	})

	if strings.Contains(out, "[Recent] Filing (SEC)") == false {
		t.Fatalf("expected Recent fallback date, got %q", out)
	}
	body := out[strings.Index(out, "\n")+1:]
	if got := len([]rune(body)); got != maxNewsSummaryChars {
		t.Fatalf("expected %d runes, got %d", maxNewsSummaryChars, got)
	}
}

func TestNormalizeImpact(t *testing.T) {
	cases := map[string]string{
		"high":     ImpactHigh,
		" Medium ": ImpactMedium,
		"LOW":      ImpactLow,
		"severe":   "",
		"":         "",
	}
	for in, want := range cases {
		if got := normalizeImpact(in); got != want {
			t.Errorf("normalizeImpact(%q) = %q, want %q", in, got, want)
		}
	}
}
