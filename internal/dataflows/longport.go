package dataflows

import (
	"context"
	"errors"
	"time"

	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"

	"github.com/rsahil/equityscope/internal/config"
)

// LongportClient serves daily candlesticks for exchanges the Longport
// API covers (HK, CN, SG). It needs API credentials, so construction
// fails cleanly when they are absent and callers stay on Yahoo.
type LongportClient struct {
	quoteCtx *quote.QuoteContext
}

// NewLongportClient creates a Longport quote client from configured
// credentials.
func NewLongportClient(cfg *config.Config) (*LongportClient, error) {
	if !cfg.HasLongport() {
		return nil, errors.New("longport API credentials not configured")
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(cfg.LongportAppKey, cfg.LongportAppSecret, cfg.LongportAccessToken))
	if err != nil {
		return nil, err
	}

	quoteContext, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, err
	}

	return &LongportClient{quoteCtx: quoteContext}, nil
}

// Covers reports whether the symbol trades on an exchange Longport
// serves.
func (lc *LongportClient) Covers(symbol string) bool {
	symbol = NormalizeSymbol(symbol)
	for _, suffix := range []string{".HK", ".SS", ".SZ", ".SI"} {
		if len(symbol) > len(suffix) && symbol[len(symbol)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// DailyHistory returns daily bars for the trailing window of days.
func (lc *LongportClient) DailyHistory(ctx context.Context, symbol string, days int) ([]*MarketData, error) {
	if lc.quoteCtx == nil {
		return nil, errors.New("quote context is nil")
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	// One bar per trading day; days is a calendar window.
	count := days * 5 / 7
	if count < 1 {
		count = 1
	}

	sticks, err := lc.quoteCtx.Candlesticks(ctx, symbol, quote.PeriodDay, int32(count), quote.AdjustTypeNo)
	if err != nil {
		return nil, err
	}

	result := make([]*MarketData, 0, len(sticks))
	for _, stick := range sticks {
		if stick == nil {
			continue
		}

		bar := &MarketData{
			Symbol:    symbol,
			Date:      time.Unix(stick.Timestamp, 0),
			Volume:    stick.Volume,
			Timestamp: time.Now(),
		}
		if stick.Open != nil {
			bar.Open = *stick.Open
		}
		if stick.High != nil {
			bar.High = *stick.High
		}
		if stick.Low != nil {
			bar.Low = *stick.Low
		}
		if stick.Close != nil {
			bar.Close = *stick.Close
			bar.AdjClose = *stick.Close
		}

		result = append(result, bar)
	}

	return result, nil
}
