package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rsahil/equityscope/internal/config"
)

const newsSearchURL = "https://query1.finance.yahoo.com/v1/finance/search"

// NewsFeedClient fetches recent company news from the Yahoo Finance
// news feed.
type NewsFeedClient struct {
	http  *resty.Client
	cache *CacheManager
}

// NewNewsFeedClient creates a new news feed client.
func NewNewsFeedClient(cfg *config.Config) *NewsFeedClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "news_feed")
	cache := NewCacheManager(cacheDir, 2*time.Hour, cfg.CacheEnabled)

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; EquityScope/1.0)")

	return &NewsFeedClient{
		http:  client,
		cache: cache,
	}
}

// feedItem mirrors one entry of the feed payload.
type feedItem struct {
	Title               string `json:"title"`
	Summary             string `json:"summary"`
	Publisher           string `json:"publisher"`
	Link                string `json:"link"`
	ProviderPublishTime int64  `json:"providerPublishTime"`
}

// CompanyNews fetches up to limit recent news items for a symbol.
func (nc *NewsFeedClient) CompanyNews(ctx context.Context, symbol string, limit int) ([]*NewsItem, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)
	if limit <= 0 {
		limit = 10
	}

	cacheKey := map[string]interface{}{"symbol": symbol, "limit": limit}

	var cached []*NewsItem
	if nc.cache.Get("news_feed", "company_news", cacheKey, &cached) {
		return cached, nil
	}

	var result []*NewsItem
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := nc.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":           symbol,
				"newsCount":   strconv.Itoa(limit),
				"quotesCount": "0",
			}).
			Get(newsSearchURL)
		if err != nil {
			return fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching news for %s", resp.StatusCode(), symbol)
		}

		result = normalizeFeedPayload(resp.Body(), symbol)
		if len(result) > limit {
			result = result[:limit]
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	nc.cache.Set("news_feed", "company_news", cacheKey, result)

	return result, nil
}

// normalizeFeedPayload reduces the feed response to a flat item slice.
// Feeds of this kind have been observed to answer with an object
// carrying a "news" array, an object keyed by symbol, or a bare array.
// Anything unrecognized normalizes to an empty slice.
func normalizeFeedPayload(body []byte, symbol string) []*NewsItem {
	var items []feedItem

	if err := json.Unmarshal(body, &items); err != nil {
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(body, &keyed); err != nil {
			return []*NewsItem{}
		}

		raw, ok := keyed["news"]
		if !ok {
			for key, value := range keyed {
				if strings.EqualFold(key, symbol) {
					raw = value
					ok = true
					break
				}
			}
		}
		if !ok {
			return []*NewsItem{}
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return []*NewsItem{}
		}
	}

	result := make([]*NewsItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}

		summary := item.Summary
		if summary == "" {
			summary = item.Title
		}

		var published time.Time
		if item.ProviderPublishTime > 0 {
			published = time.Unix(item.ProviderPublishTime, 0)
		}

		result = append(result, &NewsItem{
			Title:       item.Title,
			Summary:     summary,
			Source:      item.Publisher,
			URL:         item.Link,
			PublishedAt: published,
		})
	}

	return result
}
