package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rsahil/equityscope/internal/dataflows"
)

// priceSummaryDays bounds the text rendering handed to later prompts.
const priceSummaryDays = 10

func (p *Pipeline) runPrice(ctx context.Context, st *State) error {
	snapshot, err := p.fetchPriceHistory(ctx, st.Ticker)
	st.MarketData = snapshot
	return err
}

// fetchPriceHistory loads a year of daily bars and reshapes them into
// display records plus a compact text table of the last trading days.
// Failures come back as an error-shaped snapshot, never a panic or a
// nil result.
func (p *Pipeline) fetchPriceHistory(ctx context.Context, ticker string) (*MarketSnapshot, error) {
	if strings.Contains(ticker, UnknownTicker) {
		return &MarketSnapshot{Err: "Invalid Ticker"}, errors.New("price history: unresolved ticker")
	}

	bars, err := p.deps.Market.DailyHistory(ctx, ticker, p.cfg.HistoryDays)
	if err != nil {
		return &MarketSnapshot{Err: err.Error()}, fmt.Errorf("price history: %w", err)
	}
	if len(bars) == 0 {
		return &MarketSnapshot{Err: "No data found"}, fmt.Errorf("price history: no data for %s", ticker)
	}

	history := make([]PricePoint, 0, len(bars))
	for _, bar := range bars {
		history = append(history, PricePoint{
			Date:   bar.Date.Format("2006-01-02"),
			Close:  bar.Close.InexactFloat64(),
			Volume: bar.Volume,
		})
	}

	return &MarketSnapshot{
		History:     history,
		SummaryText: renderPriceTail(bars, priceSummaryDays),
	}, nil
}

// renderPriceTail renders the last n bars as a fixed-width table for
// prompt context.
func renderPriceTail(bars []*dataflows.MarketData, n int) string {
	if len(bars) > n {
		bars = bars[len(bars)-n:]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12s %10s %10s %10s %10s %12s\n", "Date", "Open", "High", "Low", "Close", "Volume")
	for _, bar := range bars {
		fmt.Fprintf(&sb, "%-12s %10s %10s %10s %10s %12d\n",
			bar.Date.Format("2006-01-02"),
			bar.Open.StringFixed(2),
			bar.High.StringFixed(2),
			bar.Low.StringFixed(2),
			bar.Close.StringFixed(2),
			bar.Volume)
	}

	return strings.TrimRight(sb.String(), "\n")
}
