package pipeline

// UnknownTicker is the sentinel the resolver yields when a company
// cannot be mapped to a listed instrument.
const UnknownTicker = "UNKNOWN"

// Impact levels for the news digest.
const (
	ImpactHigh   = "HIGH"
	ImpactMedium = "MEDIUM"
	ImpactLow    = "LOW"
)

// Recommendations for the final report.
const (
	RecommendBuy  = "BUY"
	RecommendSell = "SELL"
	RecommendHold = "HOLD"
)

// MetricKeys is the canonical fundamentals key set. The extraction
// prompt and the fallback map both use exactly these names.
var MetricKeys = []string{
	"Market Cap",
	"Revenue TTM",
	"Net Income",
	"Beta",
	"PE Ratio",
	"EPS TTM",
	"Dividend Yield",
	"52W High",
	"52W Low",
	"Volume",
	"Shares Out",
}

// ChartData is a placeholder series for the fundamentals charts. Web
// search does not yield historical statement arrays, so the axis is
// fixed and the series zero-filled to keep chart consumers stable.
type ChartData struct {
	Years     []string  `json:"years"`
	Revenue   []float64 `json:"revenue"`
	NetIncome []float64 `json:"net_income"`
}

// FinancialData is the fundamentals stage output.
type FinancialData struct {
	Metrics   map[string]string `json:"metrics"`
	ChartData ChartData         `json:"chart_data"`
}

// PricePoint is one display-ready history record.
type PricePoint struct {
	Date   string  `json:"Date"`
	Close  float64 `json:"Close"`
	Volume int64   `json:"Volume"`
}

// MarketSnapshot is the price stage output: either a history plus a
// text rendering for prompts, or an error reason.
type MarketSnapshot struct {
	History     []PricePoint `json:"history_data,omitempty"`
	SummaryText string       `json:"llm_context,omitempty"`
	Err         string       `json:"error,omitempty"`
}

// NewsDigest is the news stage output.
type NewsDigest struct {
	Summary     string `json:"summary"`
	ImpactLevel string `json:"impact_level,omitempty"`
}

// CompanyDetails holds descriptive issuer facts.
type CompanyDetails struct {
	CEO      string `json:"CEO"`
	Founded  string `json:"founded"`
	Industry string `json:"industry"`
	Sector   string `json:"sector"`
}

// Swot is the strengths/weaknesses/opportunities/threats breakdown.
type Swot struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Report is the terminal synthesis output. Fundamentals and News are
// only populated on the fallback path, echoing the raw upstream data
// for traceability.
type Report struct {
	Recommendation  string            `json:"recommendation"`
	SentimentScore  int               `json:"sentiment_score"`
	ConfidenceScore int               `json:"confidence_score"`
	Volatility      string            `json:"volatility"`
	Swot            Swot              `json:"swot"`
	CompanyDetails  CompanyDetails    `json:"company_details"`
	Summary         string            `json:"summary"`
	Fundamentals    map[string]string `json:"fundamentals,omitempty"`
	News            *NewsDigest       `json:"news,omitempty"`
}

// State is the shared pipeline record. Each field is written exactly
// once by its owning stage, in stage order, and read-only afterwards.
// A state lives for one run and is discarded with the event stream.
type State struct {
	CompanyName    string          `json:"company_name"`
	Ticker         string          `json:"ticker"`
	FinancialData  *FinancialData  `json:"financial_data"`
	MarketData     *MarketSnapshot `json:"market_data"`
	NewsData       *NewsDigest     `json:"news_data"`
	CompanyDetails *CompanyDetails `json:"company_details"`
	FinalReport    *Report         `json:"final_report"`
}

// NewState creates a fresh state for one run.
func NewState(companyName string) *State {
	return &State{CompanyName: companyName}
}
