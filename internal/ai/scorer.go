// Package ai defines the boundary between the deterministic report pipeline
// and the non-deterministic scoring engine. Everything downstream of Score
// works on plain Scorecard values and can be tested with fixtures.
package ai

import (
	"context"

	"github.com/theworkedge/contract-scout/internal/samgov"
	"github.com/theworkedge/contract-scout/internal/track"
)

// CostEstimate is the scorer's cost breakdown. Component names vary by track
// (products_wholesale/delivery_setup for DME, labor/expenses for consulting),
// so they are kept as a map rather than fixed fields.
type CostEstimate struct {
	Components map[string]float64
	Total      float64
}

type ProfitEstimate struct {
	Revenue     float64
	Cost        float64
	GrossProfit float64
	NetProfit   float64
}

// Scorecard is one scored opportunity as returned by the scoring engine,
// keyed to the search result by NoticeID.
type Scorecard struct {
	NoticeID    string
	Score       int
	ScoreReason string
	Highlights  []string
	Risks       []string
	Costs       CostEstimate
	Profit      ProfitEstimate
	ItemsNeeded []string
	// RequiresPastPerformance defaults to true when the scorer omits the
	// field; an unknown requirement is treated as the stricter case.
	RequiresPastPerformance bool
	PastPerformanceDetails  string
	BidRecommendation       string
	RecommendationReason    string
}

// Scorer scores one track's opportunities. Implementations wrap an LLM call;
// tests substitute fixtures.
type Scorer interface {
	Score(ctx context.Context, tr track.Track, opportunities *samgov.Opportunities) ([]*Scorecard, error)
}

const RecommendationBid = "BID"
