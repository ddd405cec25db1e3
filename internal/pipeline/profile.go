package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/rsahil/equityscope/internal/jsonx"
)

// detailsFallback substitutes for any issuer fact that could not be
// determined.
const detailsFallback = "N/A"

func (p *Pipeline) runProfile(ctx context.Context, st *State) error {
	details, err := p.fetchCompanyDetails(ctx, st.CompanyName, st.Ticker)
	st.CompanyDetails = details
	return err
}

// fetchCompanyDetails resolves issuer facts from the provider's static
// profile endpoint first, then fills the gaps through search plus
// extraction. All four fields are always present in the result,
// defaulted to N/A.
func (p *Pipeline) fetchCompanyDetails(ctx context.Context, companyName, ticker string) (*CompanyDetails, error) {
	details := &CompanyDetails{}

	if p.deps.Profile != nil {
		profile, err := p.deps.Profile.AssetProfile(ctx, ticker)
		if err != nil {
			log.Printf("[CompanyDetails] provider profile failed for %s: %v", ticker, err)
		} else if profile != nil {
			details.CEO = profile.CEO
			details.Founded = profile.Founded
			details.Industry = profile.Industry
			details.Sector = profile.Sector
		}
	}

	var extractErr error
	if details.incomplete() {
		extractErr = p.fillDetailsFromSearch(ctx, companyName, details)
	}

	details.applyDefaults()

	if extractErr != nil && details.empty() {
		return details, fmt.Errorf("company details: %w", extractErr)
	}
	return details, nil
}

// fillDetailsFromSearch extracts missing fields from web search text,
// leaving already-known fields untouched.
func (p *Pipeline) fillDetailsFromSearch(ctx context.Context, companyName string, details *CompanyDetails) error {
	query := fmt.Sprintf("%s company current CEO founding year industry sector", companyName)

	searchResults, err := p.deps.Search.Search(ctx, query)
	if err != nil {
		log.Printf("[CompanyDetails] search failed for %s: %v", companyName, err)
		searchResults = noResultsText
	}

	raw, err := p.deps.LLM.Infer(ctx, profilePrompt(companyName, searchResults))
	if err != nil {
		return fmt.Errorf("details extraction: %w", err)
	}

	var extracted CompanyDetails
	if err := json.Unmarshal([]byte(jsonx.StripCodeFences(raw)), &extracted); err != nil {
		return fmt.Errorf("details extraction: %w", err)
	}

	if details.CEO == "" {
		details.CEO = extracted.CEO
	}
	if details.Founded == "" {
		details.Founded = extracted.Founded
	}
	if details.Industry == "" {
		details.Industry = extracted.Industry
	}
	if details.Sector == "" {
		details.Sector = extracted.Sector
	}

	return nil
}

func (cd *CompanyDetails) incomplete() bool {
	return cd.CEO == "" || cd.Founded == "" || cd.Industry == "" || cd.Sector == ""
}

// empty reports whether no field holds a real value.
func (cd *CompanyDetails) empty() bool {
	for _, v := range []string{cd.CEO, cd.Founded, cd.Industry, cd.Sector} {
		if v != "" && v != detailsFallback {
			return false
		}
	}
	return true
}

func (cd *CompanyDetails) applyDefaults() {
	if cd.CEO == "" {
		cd.CEO = detailsFallback
	}
	if cd.Founded == "" {
		cd.Founded = detailsFallback
	}
	if cd.Industry == "" {
		cd.Industry = detailsFallback
	}
	if cd.Sector == "" {
		cd.Sector = detailsFallback
	}
}
