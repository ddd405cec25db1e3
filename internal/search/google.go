package search

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rsahil/equityscope/internal/config"
	"github.com/rsahil/equityscope/internal/dataflows"
)

const customSearchURL = "https://www.googleapis.com/customsearch/v1"

// GoogleClient runs web searches through the Google Custom Search JSON
// API and flattens results into one text block for prompting.
type GoogleClient struct {
	http   *resty.Client
	cache  *dataflows.CacheManager
	apiKey string
	cseID  string
}

// NewGoogleClient creates a new search client.
func NewGoogleClient(cfg *config.Config) *GoogleClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "google_search")
	cache := dataflows.NewCacheManager(cacheDir, 6*time.Hour, cfg.CacheEnabled)

	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &GoogleClient{
		http:   client,
		cache:  cache,
		apiKey: cfg.GoogleSearchAPIKey,
		cseID:  cfg.GoogleCSEID,
	}
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search returns result titles and snippets concatenated into a single
// text block, one result per paragraph.
func (gc *GoogleClient) Search(ctx context.Context, query string) (string, error) {
	if gc.apiKey == "" || gc.cseID == "" {
		return "", fmt.Errorf("google search API credentials not configured")
	}
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("search query cannot be empty")
	}

	var cached string
	if gc.cache.Get("google_search", "search", query, &cached) {
		return cached, nil
	}

	var result string
	err := dataflows.WithRetry(dataflows.DefaultRetryConfig(), func() error {
		resp, err := gc.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"key": gc.apiKey,
				"cx":  gc.cseID,
				"q":   query,
			}).
			Get(customSearchURL)
		if err != nil {
			return fmt.Errorf("search request failed: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("search API error %d: %s", resp.StatusCode(), resp.String())
		}

		var payload searchResponse
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			return fmt.Errorf("failed to parse search response: %w", err)
		}

		var sb strings.Builder
		for _, item := range payload.Items {
			sb.WriteString(item.Title)
			sb.WriteString("\n")
			sb.WriteString(item.Snippet)
			sb.WriteString("\n")
			sb.WriteString(item.Link)
			sb.WriteString("\n\n")
		}
		result = strings.TrimSpace(sb.String())

		return nil
	})
	if err != nil {
		return "", err
	}

	gc.cache.Set("google_search", "search", query, result)

	return result, nil
}
