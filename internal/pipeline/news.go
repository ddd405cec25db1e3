package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/rsahil/equityscope/internal/dataflows"
	"github.com/rsahil/equityscope/internal/jsonx"
)

// maxNewsSummaryChars bounds each item's text in the prompt context.
const maxNewsSummaryChars = 400

// emptyNewsContext stands in when retrieval yields nothing.
const emptyNewsContext = "No recent news found."

func (p *Pipeline) runNews(ctx context.Context, st *State) error {
	digest, err := p.fetchNews(ctx, st.CompanyName, st.Ticker)
	st.NewsData = digest
	return err
}

// fetchNews gathers recent items, asks the model to keep only
// market-moving events, and rates the impact. A parse or inference
// failure yields a digest that embeds the error text and omits the
// impact field.
func (p *Pipeline) fetchNews(ctx context.Context, companyName, ticker string) (*NewsDigest, error) {
	items := p.collectNewsItems(ctx, companyName, ticker)
	newsContext := formatNewsContext(items)

	raw, err := p.deps.LLM.Infer(ctx, newsPrompt(companyName, ticker, newsContext))
	if err != nil {
		return &NewsDigest{Summary: fmt.Sprintf("News synthesis failed: %v", err)}, fmt.Errorf("news synthesis: %w", err)
	}

	var digest NewsDigest
	if err := json.Unmarshal([]byte(jsonx.StripCodeFences(raw)), &digest); err != nil {
		return &NewsDigest{Summary: fmt.Sprintf("News synthesis failed: %v", err)}, fmt.Errorf("news synthesis: %w", err)
	}

	digest.ImpactLevel = normalizeImpact(digest.ImpactLevel)

	return &digest, nil
}

// collectNewsItems tries the symbol feed first and falls back to a
// keyword news search. Retrieval errors degrade to an empty set.
func (p *Pipeline) collectNewsItems(ctx context.Context, companyName, ticker string) []*dataflows.NewsItem {
	if p.deps.News != nil {
		items, err := p.deps.News.CompanyNews(ctx, ticker, p.cfg.NewsLimit)
		if err != nil {
			log.Printf("[News] feed failed for %s: %v", ticker, err)
		} else if len(items) > 0 {
			return items
		}
	}

	if p.deps.NewsFallback != nil {
		query := fmt.Sprintf("%s stock news", companyName)
		items, err := p.deps.NewsFallback.Search(ctx, query, p.cfg.NewsLimit)
		if err != nil {
			log.Printf("[News] search fallback failed for %s: %v", companyName, err)
		} else {
			return items
		}
	}

	return nil
}

// formatNewsContext concatenates items into one prompt context block.
func formatNewsContext(items []*dataflows.NewsItem) string {
	if len(items) == 0 {
		return emptyNewsContext
	}

	var sb strings.Builder
	for _, item := range items {
		date := "Recent"
		if !item.PublishedAt.IsZero() {
			date = item.PublishedAt.Format("Jan 2, 2006")
		}

		summary := item.Summary
		if runes := []rune(summary); len(runes) > maxNewsSummaryChars {
			summary = string(runes[:maxNewsSummaryChars])
		}

		fmt.Fprintf(&sb, "[%s] %s (%s)\n%s\n\n", date, item.Title, item.Source, summary)
	}

	return strings.TrimSpace(sb.String())
}

func normalizeImpact(impact string) string {
	switch strings.ToUpper(strings.TrimSpace(impact)) {
	case ImpactHigh:
		return ImpactHigh
	case ImpactMedium:
		return ImpactMedium
	case ImpactLow:
		return ImpactLow
	default:
		return ""
	}
}
