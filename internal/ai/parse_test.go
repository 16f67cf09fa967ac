package ai

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseScorecardsStripsCodeFence(t *testing.T) {
	raw := "```json\n" + `[
  {
    "noticeId": "n-1",
    "score": 8,
    "score_reason": "strong product match",
    "opportunity_highlights": ["wheelchairs", "Florida delivery"],
    "risks": ["tight deadline"],
    "estimated_costs": {"products_wholesale": 42000, "delivery_setup": 2400, "total": 44400},
    "estimated_profit": {"revenue": 90000, "cost": 44400, "gross_profit": 45600, "net_profit": 31500},
    "products_needed": ["power wheelchair"],
    "requires_past_performance": false,
    "past_performance_details": "not mentioned",
    "bid_recommendation": "BID",
    "recommendation_reason": "ideal first contract"
  }
]` + "\n```"

	cards, err := ParseScorecards(raw, zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 scorecard, got %d", len(cards))
	}

	card := cards[0]
	if card.NoticeID != "n-1" {
		t.Fatalf("unexpected notice id: %q", card.NoticeID)
	}
	if card.Score != 8 {
		t.Fatalf("unexpected score: %d", card.Score)
	}
	if card.RequiresPastPerformance {
		t.Fatal("expected requires_past_performance=false")
	}
	if card.BidRecommendation != RecommendationBid {
		t.Fatalf("unexpected recommendation: %q", card.BidRecommendation)
	}
	if card.Costs.Total != 44400 {
		t.Fatalf("unexpected cost total: %v", card.Costs.Total)
	}
	if card.Costs.Components["products_wholesale"] != 42000 {
		t.Fatalf("unexpected cost component: %v", card.Costs.Components)
	}
	if card.Profit.NetProfit != 31500 {
		t.Fatalf("unexpected net profit: %v", card.Profit.NetProfit)
	}
	if len(card.ItemsNeeded) != 1 || card.ItemsNeeded[0] != "power wheelchair" {
		t.Fatalf("unexpected items: %v", card.ItemsNeeded)
	}
}

func TestParseScorecardsClampsOutOfRangeScore(t *testing.T) {
	raw := `[{"noticeId": "n-1", "score": 13}, {"noticeId": "n-2", "score": -4}]`

	cards, err := ParseScorecards(raw, zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cards[0].Score != 10 {
		t.Fatalf("expected score clamped to 10, got %d", cards[0].Score)
	}
	if cards[1].Score != 1 {
		t.Fatalf("expected score clamped to 1, got %d", cards[1].Score)
	}
}

func TestParseScorecardsMissingScoreBecomesZero(t *testing.T) {
	raw := `[{"noticeId": "n-1"}]`

	cards, err := ParseScorecards(raw, zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cards[0].Score != 0 {
		t.Fatalf("expected 0 score, got %d", cards[0].Score)
	}
}

func TestParseScorecardsDefaultsPastPerformanceToTrue(t *testing.T) {
	raw := `[{"noticeId": "n-1", "score": 7}]`

	cards, err := ParseScorecards(raw, zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cards[0].RequiresPastPerformance {
		t.Fatal("expected requires_past_performance to default to true")
	}
}

func TestParseScorecardsNormalizesRecommendation(t *testing.T) {
	raw := `[
		{"noticeId": "n-1", "score": 7, "bid_recommendation": "bid"},
		{"noticeId": "n-2", "score": 3, "bid_recommendation": "maybe"},
		{"noticeId": "n-3", "score": 3}
	]`

	cards, err := ParseScorecards(raw, zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cards[0].BidRecommendation != "BID" {
		t.Fatalf("expected lowercase bid uppercased, got %q", cards[0].BidRecommendation)
	}
	if cards[1].BidRecommendation != "NO-BID" {
		t.Fatalf("expected unknown value coerced to NO-BID, got %q", cards[1].BidRecommendation)
	}
	if cards[2].BidRecommendation != "NO-BID" {
		t.Fatalf("expected missing value coerced to NO-BID, got %q", cards[2].BidRecommendation)
	}
}

func TestParseScorecardsServicesNeeded(t *testing.T) {
	raw := `[{"noticeId": "n-1", "score": 6, "services_needed": ["agile coaching", "training"]}]`

	cards, err := ParseScorecards(raw, zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cards[0].ItemsNeeded) != 2 || cards[0].ItemsNeeded[0] != "agile coaching" {
		t.Fatalf("unexpected items: %v", cards[0].ItemsNeeded)
	}
}

func TestParseScorecardsRejectsNonJSON(t *testing.T) {
	if _, err := ParseScorecards("I could not evaluate these opportunities.", zap.NewNop()); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestParseScorecardsEmptyArray(t *testing.T) {
	cards, err := ParseScorecards("[]", zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected no scorecards, got %d", len(cards))
	}
}
