package pipeline

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsahil/equityscope/internal/config"
	"github.com/rsahil/equityscope/internal/dataflows"
)

type fakeLLM struct {
	respond func(prompt string) (string, error)
	prompts []string
}

func (f *fakeLLM) Infer(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.respond(prompt)
}

type fakeSearch struct {
	result  string
	err     error
	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

type fakeMarket struct {
	bars  []*dataflows.MarketData
	err   error
	calls int
}

func (f *fakeMarket) DailyHistory(ctx context.Context, symbol string, days int) ([]*dataflows.MarketData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}

type fakeNews struct {
	items []*dataflows.NewsItem
	err   error
}

func (f *fakeNews) CompanyNews(ctx context.Context, symbol string, limit int) ([]*dataflows.NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeNewsSearch struct {
	items []*dataflows.NewsItem
	err   error
}

func (f *fakeNewsSearch) Search(ctx context.Context, query string, maxResults int) ([]*dataflows.NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeProfile struct {
	profile *dataflows.CompanyProfile
	err     error
}

func (f *fakeProfile) AssetProfile(ctx context.Context, symbol string) (*dataflows.CompanyProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newTestPipeline(deps Deps) *Pipeline {
	cfg := config.DefaultConfig()
	cfg.CacheEnabled = false
	return New(cfg, deps)
}

func makeBars(symbol string, n int) []*dataflows.MarketData {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	bars := make([]*dataflows.MarketData, 0, n)
	for i := 0; i < n; i++ {
		price := decimal.NewFromFloat(100 + float64(i))
		bars = append(bars, &dataflows.MarketData{
			Symbol: symbol,
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price.Add(decimal.NewFromInt(2)),
			Low:    price.Sub(decimal.NewFromInt(2)),
			Close:  price.Add(decimal.NewFromInt(1)),
			Volume: int64(1000000 + i),
		})
	}

	return bars
}
