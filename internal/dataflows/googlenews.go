package dataflows

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/rsahil/equityscope/internal/config"
)

const googleNewsURL = "https://news.google.com/search"

// GoogleNewsClient scrapes Google News search results. It backs up the
// feed client when the feed has nothing for a symbol, searching by
// free-text query instead.
type GoogleNewsClient struct {
	http  *resty.Client
	cache *CacheManager
}

// NewGoogleNewsClient creates a new Google News scraper client.
func NewGoogleNewsClient(cfg *config.Config) *GoogleNewsClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "google_news")
	cache := NewCacheManager(cacheDir, 2*time.Hour, cfg.CacheEnabled)

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; EquityScope/1.0)")

	return &GoogleNewsClient{
		http:  client,
		cache: cache,
	}
}

// Search scrapes up to maxResults articles matching the query.
func (gc *GoogleNewsClient) Search(ctx context.Context, query string, maxResults int) ([]*NewsItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	cacheKey := map[string]interface{}{"query": query, "max": maxResults}

	var cached []*NewsItem
	if gc.cache.Get("google_news", "search", cacheKey, &cached) {
		return cached, nil
	}

	searchURL := fmt.Sprintf("%s?q=%s&hl=en&gl=US&ceid=US:en", googleNewsURL, url.QueryEscape(query))

	var result []*NewsItem
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := gc.http.R().SetContext(ctx).Get(searchURL)
		if err != nil {
			return fmt.Errorf("failed to fetch Google News: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching Google News", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		result = parseGoogleNewsHTML(doc)
		if len(result) > maxResults {
			result = result[:maxResults]
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	gc.cache.Set("google_news", "search", cacheKey, result)

	return result, nil
}

func parseGoogleNewsHTML(doc *goquery.Document) []*NewsItem {
	var items []*NewsItem

	doc.Find("article").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return
		}

		href, _ := s.Find("a").First().Attr("href")

		source := strings.TrimSpace(s.Find("div[data-n-tid]").Text())
		if source == "" {
			source = "Google News"
		}

		var published time.Time
		if datetime, ok := s.Find("time").Attr("datetime"); ok {
			if t, err := time.Parse(time.RFC3339, datetime); err == nil {
				published = t
			}
		}

		snippet := strings.TrimSpace(s.Find("span").Last().Text())
		if snippet == "" {
			snippet = title
		}

		items = append(items, &NewsItem{
			Title:       title,
			Summary:     snippet,
			Source:      source,
			URL:         cleanGoogleNewsURL(href),
			PublishedAt: published,
		})
	})

	return items
}

// cleanGoogleNewsURL unwraps the Google News redirect wrapper.
func cleanGoogleNewsURL(googleURL string) string {
	if strings.Contains(googleURL, "url=") {
		parts := strings.Split(googleURL, "url=")
		if len(parts) > 1 {
			if decoded, err := url.QueryUnescape(parts[1]); err == nil {
				return decoded
			}
		}
	}

	if strings.HasPrefix(googleURL, "./") {
		return "https://news.google.com" + googleURL[1:]
	}
	if strings.HasPrefix(googleURL, "/") {
		return "https://news.google.com" + googleURL
	}

	return googleURL
}
