package report

import (
	"go.uber.org/zap"

	"github.com/theworkedge/contract-scout/internal/ai"
	"github.com/theworkedge/contract-scout/internal/classify"
	"github.com/theworkedge/contract-scout/internal/samgov"
)

// Item is one opportunity joined with its scorecard and its deterministic
// category. Everything downstream (buckets, CSV, email bodies) reads from
// this shape.
type Item struct {
	Opportunity *samgov.Opportunity
	Card        *ai.Scorecard
	Category    string
}

func (i *Item) Score() int {
	if i.Card == nil {
		return 0
	}
	return i.Card.Score
}

func (i *Item) NetProfit() float64 {
	if i.Card == nil {
		return 0
	}
	return i.Card.Profit.NetProfit
}

// RequiresPastPerformance treats a missing scorecard as the stricter case,
// matching the parse-time default for an absent flag.
func (i *Item) RequiresPastPerformance() bool {
	if i.Card == nil {
		return true
	}
	return i.Card.RequiresPastPerformance
}

func (i *Item) Recommendation() string {
	if i.Card == nil {
		return ""
	}
	return i.Card.BidRecommendation
}

// Merge joins opportunities with scorecards by notice ID and attaches the
// classifier's category. Mismatches on either side are dropped, with a
// warning naming the IDs so a silent join bug cannot hide.
func Merge(opps *samgov.Opportunities, cards []*ai.Scorecard, classifier *classify.Classifier, logger *zap.Logger) []*Item {
	byID := make(map[string]*ai.Scorecard, len(cards))
	for _, card := range cards {
		byID[card.NoticeID] = card
	}

	items := make([]*Item, 0, opps.Len())
	matched := make(map[string]struct{}, len(cards))
	var unscored []string

	for _, opp := range opps.Items {
		card, ok := byID[opp.NoticeID]
		if !ok {
			unscored = append(unscored, opp.NoticeID)
			continue
		}
		matched[opp.NoticeID] = struct{}{}

		category := classifier.Classify(opp.Title, opp.Description)
		card.Highlights = append([]string{"Category: " + category}, card.Highlights...)

		items = append(items, &Item{
			Opportunity: opp,
			Card:        card,
			Category:    category,
		})
	}

	if len(unscored) > 0 {
		logger.Warn("opportunities missing from scorer response",
			zap.Strings("notice_ids", unscored),
		)
	}

	var unknown []string
	for _, card := range cards {
		if _, ok := matched[card.NoticeID]; !ok {
			unknown = append(unknown, card.NoticeID)
		}
	}
	if len(unknown) > 0 {
		logger.Warn("scorer returned unknown notice ids",
			zap.Strings("notice_ids", unknown),
		)
	}

	return items
}
