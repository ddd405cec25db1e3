package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFetchPriceHistorySuccess(t *testing.T) {
	market := &fakeMarket{bars: makeBars("MSFT", 15)}
	p := newTestPipeline(Deps{Market: market})

	snapshot, err := p.fetchPriceHistory(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("fetchPriceHistory: %v", err)
	}
	if len(snapshot.History) != 15 {
		t.Fatalf("expected 15 points, got %d", len(snapshot.History))
	}
	if snapshot.History[0].Date != "2025-01-06" {
		t.Fatalf("unexpected first date %q", snapshot.History[0].Date)
	}
	if snapshot.Err != "" {
		t.Fatalf("unexpected error field %q", snapshot.Err)
	}

	// Summary holds a header plus at most the last ten trading days.
	lines := strings.Split(snapshot.SummaryText, "\n")
	if len(lines) != priceSummaryDays+1 {
		t.Fatalf("expected %d summary lines, got %d", priceSummaryDays+1, len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "2025-01-20") {
		t.Fatalf("expected last bar in summary, got %q", lines[len(lines)-1])
	}
}

func TestFetchPriceHistoryUnresolvedTickerSkipsFetch(t *testing.T) {
	market := &fakeMarket{bars: makeBars("MSFT", 5)}
	p := newTestPipeline(Deps{Market: market})

	snapshot, err := p.fetchPriceHistory(context.Background(), UnknownTicker)
	if err == nil {
		t.Fatal("expected a degraded-mode reason")
	}
	if snapshot.Err != "Invalid Ticker" {
		t.Fatalf("expected Invalid Ticker marker, got %q", snapshot.Err)
	}
	if market.calls != 0 {
		t.Fatalf("expected no market fetch, got %d calls", market.calls)
	}
}

func TestFetchPriceHistoryProviderFailure(t *testing.T) {
	market := &fakeMarket{err: errors.New("connection reset")}
	p := newTestPipeline(Deps{Market: market})

	snapshot, err := p.fetchPriceHistory(context.Background(), "MSFT")
	if err == nil {
		t.Fatal("expected a degraded-mode reason")
	}
	if snapshot == nil || snapshot.Err != "connection reset" {
		t.Fatalf("expected provider error on snapshot, got %+v", snapshot)
	}
}

func TestFetchPriceHistoryEmptySeries(t *testing.T) {
	p := newTestPipeline(Deps{Market: &fakeMarket{}})

	snapshot, err := p.fetchPriceHistory(context.Background(), "MSFT")
	if err == nil {
		t.Fatal("expected a degraded-mode reason")
	}
	if snapshot.Err != "No data found" {
		t.Fatalf("expected No data found marker, got %q", snapshot.Err)
	}
}

func TestRenderPriceTailShortSeries(t *testing.T) {
	bars := makeBars("MSFT", 3)

	out := renderPriceTail(bars, priceSummaryDays)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "101.00") {
		t.Fatalf("expected two-decimal close, got %q", lines[1])
	}
}
