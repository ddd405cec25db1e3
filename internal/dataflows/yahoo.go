package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"github.com/rsahil/equityscope/internal/config"
)

const quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"

// YahooClient handles Yahoo Finance data operations.
type YahooClient struct {
	http  *resty.Client
	cache *CacheManager
}

// NewYahooClient creates a new Yahoo Finance client.
func NewYahooClient(cfg *config.Config) *YahooClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "yahoo_finance")
	cache := NewCacheManager(cacheDir, 24*time.Hour, cfg.CacheEnabled)

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; EquityScope/1.0)")

	return &YahooClient{
		http:  client,
		cache: cache,
	}
}

// DailyHistory returns daily bars for the trailing window of days.
func (yc *YahooClient) DailyHistory(ctx context.Context, symbol string, days int) ([]*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	}

	var cached []*MarketData
	if yc.cache.Get("yahoo", "historical", cacheKey, &cached) {
		return cached, nil
	}

	var result []*MarketData
	err := WithRetry(DefaultRetryConfig(), func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		result = make([]*MarketData, 0)
		for iter.Next() {
			bar := iter.Bar()

			result = append(result, &MarketData{
				Symbol:    symbol,
				Date:      time.Unix(int64(bar.Timestamp), 0),
				Open:      bar.Open,
				High:      bar.High,
				Low:       bar.Low,
				Close:     bar.Close,
				AdjClose:  bar.AdjClose,
				Volume:    int64(bar.Volume),
				Timestamp: time.Now(),
			})
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	yc.cache.Set("yahoo", "historical", cacheKey, result)

	return result, nil
}

// quoteSummaryResponse mirrors the slice of the quoteSummary payload we
// care about; the endpoint returns far more than this.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector          string `json:"sector"`
				Industry        string `json:"industry"`
				CompanyOfficers []struct {
					Name  string `json:"name"`
					Title string `json:"title"`
				} `json:"companyOfficers"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// AssetProfile fetches the provider's static company profile. Founded
// date is not part of the assetProfile module, so that field comes back
// empty here and the caller fills it another way.
func (yc *YahooClient) AssetProfile(ctx context.Context, symbol string) (*CompanyProfile, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	var cached CompanyProfile
	if yc.cache.Get("yahoo", "asset_profile", symbol, &cached) {
		return &cached, nil
	}

	var profile *CompanyProfile
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := yc.http.R().
			SetContext(ctx).
			SetQueryParam("modules", "assetProfile").
			Get(fmt.Sprintf("%s/%s", quoteSummaryURL, symbol))
		if err != nil {
			return fmt.Errorf("failed to fetch asset profile for %s: %w", symbol, err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching asset profile for %s", resp.StatusCode(), symbol)
		}

		var payload quoteSummaryResponse
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			return fmt.Errorf("failed to parse asset profile response: %w", err)
		}
		if payload.QuoteSummary.Error != nil {
			return fmt.Errorf("asset profile error for %s: %s", symbol, payload.QuoteSummary.Error.Description)
		}
		if len(payload.QuoteSummary.Result) == 0 {
			return fmt.Errorf("no asset profile data for %s", symbol)
		}

		ap := payload.QuoteSummary.Result[0].AssetProfile
		profile = &CompanyProfile{
			Industry: ap.Industry,
			Sector:   ap.Sector,
		}
		for _, officer := range ap.CompanyOfficers {
			title := strings.ToLower(officer.Title)
			if strings.Contains(title, "ceo") || strings.Contains(title, "chief executive") {
				profile.CEO = officer.Name
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	yc.cache.Set("yahoo", "asset_profile", symbol, profile)

	return profile, nil
}
