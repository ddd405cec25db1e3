package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rsahil/equityscope/internal/jsonx"
)

var tickerCharset = regexp.MustCompile(`[^A-Z0-9.]`)

func (p *Pipeline) runResolver(ctx context.Context, st *State) error {
	ticker, err := p.resolveTicker(ctx, st.CompanyName)
	st.Ticker = ticker
	return err
}

// resolveTicker maps a free-text company name to an exchange-qualified
// symbol. Every failure mode collapses to the UNKNOWN sentinel, never
// an error-shaped or empty ticker; the returned error only records why.
func (p *Pipeline) resolveTicker(ctx context.Context, companyName string) (string, error) {
	raw, err := p.deps.LLM.Infer(ctx, resolverPrompt(companyName))
	if err != nil {
		return UnknownTicker, fmt.Errorf("ticker resolution: %w", err)
	}

	obj, err := jsonx.ExtractObject(raw)
	if err != nil {
		return UnknownTicker, fmt.Errorf("ticker resolution: %w", err)
	}

	var payload struct {
		Ticker string `json:"ticker"`
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return UnknownTicker, fmt.Errorf("ticker resolution: %w", err)
	}

	ticker := sanitizeTicker(payload.Ticker)
	if ticker == "" || ticker == "NULL" {
		return UnknownTicker, fmt.Errorf("ticker resolution: no listing found for %q", companyName)
	}

	return ticker, nil
}

// sanitizeTicker uppercases and strips everything outside [A-Z0-9.].
func sanitizeTicker(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	return tickerCharset.ReplaceAllString(ticker, "")
}
