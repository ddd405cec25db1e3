package dataflows

import (
	"context"
	"log"
)

// MarketRouter routes history requests to the data source that covers
// the symbol's exchange: Longport for HK/CN/SG listings when
// configured, Yahoo Finance for everything else and as fallback.
type MarketRouter struct {
	yahoo    *YahooClient
	longport *LongportClient
}

// NewMarketRouter creates a router over the given sources. longport may
// be nil.
func NewMarketRouter(yahoo *YahooClient, longport *LongportClient) *MarketRouter {
	return &MarketRouter{
		yahoo:    yahoo,
		longport: longport,
	}
}

// DailyHistory returns daily bars for the trailing window of days.
func (mr *MarketRouter) DailyHistory(ctx context.Context, symbol string, days int) ([]*MarketData, error) {
	if mr.longport != nil && mr.longport.Covers(symbol) {
		bars, err := mr.longport.DailyHistory(ctx, symbol, days)
		if err == nil && len(bars) > 0 {
			return bars, nil
		}
		if err != nil {
			log.Printf("[MarketRouter] Longport failed for %s, falling back to Yahoo: %v", symbol, err)
		}
	}

	return mr.yahoo.DailyHistory(ctx, symbol, days)
}
