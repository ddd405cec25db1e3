package dataflows

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData represents one daily price bar.
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewsItem represents a single news item from a feed or scrape.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// CompanyProfile holds descriptive issuer facts from a provider's
// static-info endpoint. Empty fields mean the provider did not supply
// a value; callers substitute their own fallback.
type CompanyProfile struct {
	CEO      string `json:"ceo"`
	Founded  string `json:"founded"`
	Industry string `json:"industry"`
	Sector   string `json:"sector"`
}
