package pipeline

import (
	"context"
	"log"

	"github.com/rsahil/equityscope/internal/config"
	"github.com/rsahil/equityscope/internal/dataflows"
)

// Stage names, in execution order.
const (
	StageResolver     = "ticker_resolver"
	StageFundamentals = "fundamentals"
	StagePrice        = "market_data"
	StageNews         = "news"
	StageProfile      = "company_details"
	StageAnalyst      = "master_analyst"
)

// Inferencer is the language-inference boundary. The response is raw
// text with no schema guarantee.
type Inferencer interface {
	Infer(ctx context.Context, prompt string) (string, error)
}

// Searcher is the web-search boundary, returning unstructured text.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// MarketSource provides daily price bars.
type MarketSource interface {
	DailyHistory(ctx context.Context, symbol string, days int) ([]*dataflows.MarketData, error)
}

// NewsSource provides recent company news items by symbol.
type NewsSource interface {
	CompanyNews(ctx context.Context, symbol string, limit int) ([]*dataflows.NewsItem, error)
}

// NewsSearcher provides news items by free-text query; used when the
// symbol feed comes back empty.
type NewsSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]*dataflows.NewsItem, error)
}

// ProfileSource provides a provider's static company profile.
type ProfileSource interface {
	AssetProfile(ctx context.Context, symbol string) (*dataflows.CompanyProfile, error)
}

// Deps carries the external collaborators of the pipeline. LLM, Search,
// Market, and News are required; NewsFallback and Profile are optional
// enrichments.
type Deps struct {
	LLM          Inferencer
	Search       Searcher
	Market       MarketSource
	News         NewsSource
	NewsFallback NewsSearcher
	Profile      ProfileSource
}

// Pipeline executes the fixed analysis chain over a shared state. The
// collaborators are injected once at construction; there is no hidden
// global state, so tests substitute fakes freely.
type Pipeline struct {
	cfg  *config.Config
	deps Deps
}

// New creates a pipeline over the given collaborators.
func New(cfg *config.Config, deps Deps) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Pipeline{cfg: cfg, deps: deps}
}

// StageResult is one stage-completion event. State is the shared record
// after the stage's merge; Err carries the degraded-mode reason when
// the stage fell back to a placeholder value, nil on a clean pass. A
// non-nil Err never means a missing field: every stage writes a fully
// shaped value either way.
type StageResult struct {
	Stage string
	State *State
	Err   error
}

type stage struct {
	name string
	run  func(ctx context.Context, st *State) error
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{StageResolver, p.runResolver},
		{StageFundamentals, p.runFundamentals},
		{StagePrice, p.runPrice},
		{StageNews, p.runNews},
		{StageProfile, p.runProfile},
		{StageAnalyst, p.runAnalyst},
	}
}

// Run starts one analysis over a fresh state and returns the event
// stream: exactly one StageResult per stage, in fixed order, channel
// closed after the analyst stage. Production is sequential; streaming
// means incrementally observable, not concurrent. Runs are not
// resumable.
func (p *Pipeline) Run(ctx context.Context, companyName string) <-chan StageResult {
	events := make(chan StageResult)

	go func() {
		defer close(events)

		st := NewState(companyName)
		for _, s := range p.stages() {
			err := s.run(ctx, st)
			if err != nil {
				log.Printf("[Pipeline] %s degraded: %v", s.name, err)
			}
			events <- StageResult{Stage: s.name, State: st, Err: err}
		}
	}()

	return events
}
