package pipeline

import (
	"fmt"
	"strings"
)

func resolverPrompt(companyName string) string {
	return fmt.Sprintf(`Act as a financial data expert. Identify the correct stock ticker for the company: '%s'.

Follow these GLOBAL TICKER RULES:
1. USA (NYSE/NASDAQ): Ticker only (e.g., Apple -> AAPL).
2. India: Append '.NS' for NSE (e.g., Reliance -> RELIANCE.NS).
3. United Kingdom: Append '.L' (e.g., Tesco -> TSCO.L).
4. Canada: Append '.TO' for TSX (e.g., Shopify -> SHOP.TO).
5. Europe: Append '.DE' (Frankfurt), '.PA' (Paris), or '.AS' (Amsterdam).
6. Asia: Append '.HK' (Hong Kong), '.T' (Tokyo), '.SS' (Shanghai), '.KS' (Korea).
7. Australia: Append '.AX'.

CRITICAL INSTRUCTIONS:
- Select the primary listing with the highest trading volume.
- If the company is private or cannot be found, return "null".
- OUTPUT: Return STRICT JSON only. No markdown, no conversational text.

### EXAMPLES:
Input: "Samsung Electronics"
Output: {"ticker": "005930.KS"}

Input: "LVMH"
Output: {"ticker": "MC.PA"}

Input: "Commonwealth Bank"
Output: {"ticker": "CBA.AX"}

Input: "Microsoft"
Output: {"ticker": "MSFT"}

Input: "%s"
Output:`, companyName, companyName)
}

// numberSystemsReference lists regional large-number naming systems and
// their multipliers. Embedded in the fundamentals prompt so the model
// converts regional notation instead of guessing.
const numberSystemsReference = `Region: India/South Asia
  Systems: Lakh, Crore, Arab
  Multipliers: lakh = 100,000 | crore = 10,000,000 | arab = 1,000,000,000
Region: East Asia (China/Japan/Korea)
  Systems: Wan, Man, Yi, Oku, Cho
  Multipliers: wan = 10,000 | man = 10,000 | yi = 100,000,000 | oku = 100,000,000 | cho = 1,000,000,000,000
Region: International/Western
  Systems: Million, Billion, Trillion
  Multipliers: million = 1,000,000 | billion = 1,000,000,000 | trillion = 1,000,000,000,000`

func fundamentalsPrompt(companyName, ticker, searchResults string) string {
	return fmt.Sprintf(`You are a Global Financial Data Analyst extracting metrics for %s (%s).

### REFERENCE: REGIONAL NUMBER SYSTEMS
Use these rules if the source text uses regional terms (e.g., "50 Crore"):
%s

### SOURCE DATA (From Search):
%s

### MATH & LOGIC RULES TO FOLLOW:
1. Lakh Crore Check: A market cap of approx 21 Lakh Crore INR.
   * Wrong Math: 21 Lakh Crore = $21 Trillion USD (FALSE: this exceeds US GDP)
   * Correct Math: (21 * 10^5 * 10^7) / 84 INR rate = approx $250 Billion USD (CORRECT)
2. Date Check: Prioritize data from 2024-2025. Ignore older data unless it is the only option.
3. Currency Conversion:
   * INR/JPY/KRW: Divide by the exchange rate (e.g., Value / 84).
   * EUR/GBP: Multiply by the exchange rate (e.g., Value * 1.10).
   * UK listings quote in pence: divide by 100 for pounds before converting.
4. Sanity Check: no single country's company exceeds the low hundreds of billions USD in market cap outside the US, and no company exceeds a few trillion USD globally. Re-derive your math if a value breaks this.

### EXECUTION STEPS:
1. Extract the raw native value (e.g., "21,04,299 Crore INR").
2. Convert to a full integer (21,04,299 * 10,000,000 = 21,042,990,000,000).
3. Apply the exchange rate (21,042,990,000,000 / 84.5 = 249,029,467,455).
4. Format compactly ("249.03B").

All monetary values in USD except "52W High" and "52W Low", which stay in the native trading currency.

### REQUIRED OUTPUT (JSON):
{
    "meta": {
        "detected_currency": "e.g. INR",
        "exchange_rate_used": "e.g. 84.5",
        "math_scratchpad": "write your conversion math here"
    },
    "metrics": {
        "Market Cap": "Value in USD (e.g. 249.03B)",
        "Revenue TTM": "Value in USD",
        "Net Income": "Value in USD",
        "Beta": "Value",
        "PE Ratio": "Value",
        "EPS TTM": "Value in USD",
        "Dividend Yield": "Value %%",
        "52W High": "Value (Native)",
        "52W Low": "Value (Native)",
        "Volume": "Value in M",
        "Shares Out": "Value"
    }
}`, companyName, ticker, numberSystemsReference, searchResults)
}

func newsPrompt(companyName, ticker, newsContext string) string {
	return fmt.Sprintf(`You are a financial news analyst covering %s (%s).

### RECENT NEWS ITEMS:
%s

### YOUR TASK:
Summarize only market-moving events from the items above. Relevant categories:
- Earnings results and guidance changes
- Analyst rating upgrades or downgrades
- Mergers, acquisitions, and major partnerships
- Regulatory action, lawsuits, and investigations
- Leadership changes

Ignore routine coverage and promotional items. Rate the overall market impact of what remains.

Return valid JSON only, no markdown:
{
    "summary": "plain text summary of market-moving news",
    "impact_level": "HIGH or MEDIUM or LOW"
}`, companyName, ticker, newsContext)
}

func profilePrompt(companyName, searchResults string) string {
	return fmt.Sprintf(`Extract the following details for %s from the search results below: who is the current CEO, when was it founded, which industry and sector. If a field is missing, use "N/A".

SEARCH RESULTS:
%s

Return valid JSON only:
{
    "CEO": "Name",
    "founded": "Year",
    "industry": "Industry Name",
    "sector": "Sector Name"
}`, companyName, searchResults)
}

func analystPrompt(st *State) string {
	metrics := map[string]string{}
	if st.FinancialData != nil {
		metrics = st.FinancialData.Metrics
	}

	priceText := "No price data"
	if st.MarketData != nil && st.MarketData.SummaryText != "" {
		priceText = st.MarketData.SummaryText
	}

	var news strings.Builder
	if st.NewsData != nil {
		news.WriteString(st.NewsData.Summary)
		if st.NewsData.ImpactLevel != "" {
			news.WriteString(" (impact: ")
			news.WriteString(st.NewsData.ImpactLevel)
			news.WriteString(")")
		}
	} else {
		news.WriteString("No news data")
	}

	details := &CompanyDetails{}
	if st.CompanyDetails != nil {
		details = st.CompanyDetails
	}

	var metricLines strings.Builder
	for _, key := range MetricKeys {
		if value, ok := metrics[key]; ok {
			fmt.Fprintf(&metricLines, "%s: %s\n", key, value)
		}
	}

	return fmt.Sprintf(`You are a Senior Financial Analyst. Analyze %s (%s).

### DATA:
PRICE HISTORY (last 10 trading days):
%s

FUNDAMENTALS:
%s
NEWS:
%s

COMPANY DETAILS:
CEO: %s | Founded: %s | Industry: %s | Sector: %s

### INSTRUCTIONS:
1. Analyze the data to determine a Buy/Sell/Hold recommendation.
2. STRICT TEXT RULE: Use ONLY plain text. NO Markdown, NO asterisks, NO bolding, NO bullet point characters.
3. JSON OUTPUT ONLY:
{
    "sentiment_score": 50,
    "confidence_score": 50,
    "recommendation": "BUY",
    "volatility": "Medium",
    "swot": {
        "strengths": ["Factor 1", "Factor 2"],
        "weaknesses": ["Factor 1", "Factor 2"],
        "opportunities": ["Factor 1", "Factor 2"],
        "threats": ["Factor 1", "Factor 2"]
    },
    "company_details": {
        "CEO": "Name",
        "founded": "Year",
        "industry": "Industry Name",
        "sector": "Sector Name"
    },
    "summary": "Write a clean, professional paragraph here without any special formatting."
}`,
		st.CompanyName, st.Ticker,
		priceText,
		metricLines.String(),
		news.String(),
		details.CEO, details.Founded, details.Industry, details.Sector)
}
