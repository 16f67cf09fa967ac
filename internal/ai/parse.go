package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseScorecards decodes the scoring engine's raw response into scorecards.
// Markdown code fences are stripped first; anything that then fails to parse
// as a JSON array is an error for the whole track — partial results are worse
// than a clean failure here.
func ParseScorecards(raw string, logger *zap.Logger) ([]*Scorecard, error) {
	cleaned := extractJSON(raw)

	var elements []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, fmt.Errorf("parse scorer response: %w", err)
	}

	cards := make([]*Scorecard, 0, len(elements))
	for _, element := range elements {
		cards = append(cards, buildScorecard(element, logger))
	}

	return cards, nil
}

func buildScorecard(data map[string]any, logger *zap.Logger) *Scorecard {
	card := &Scorecard{
		NoticeID:               coerceString(data["noticeId"]),
		ScoreReason:            coerceString(data["score_reason"]),
		Highlights:             coerceStringSlice(data["opportunity_highlights"]),
		Risks:                  coerceStringSlice(data["risks"]),
		ItemsNeeded:            itemsNeeded(data),
		PastPerformanceDetails: coerceString(data["past_performance_details"]),
		RecommendationReason:   coerceString(data["recommendation_reason"]),
	}

	card.Score = clampScore(data["score"], card.NoticeID, logger)

	// Absent flag means the scorer could not tell; assume the requirement
	// exists so the notice lands in the monitor bucket, not the actionable one.
	if v, ok := data["requires_past_performance"]; ok {
		card.RequiresPastPerformance = coerceBool(v)
	} else {
		card.RequiresPastPerformance = true
	}

	rec := strings.ToUpper(coerceString(data["bid_recommendation"]))
	if rec != RecommendationBid {
		rec = "NO-BID"
	}
	card.BidRecommendation = rec

	card.Costs = parseCosts(data["estimated_costs"])
	card.Profit = parseProfit(data["estimated_profit"])

	return card
}

// clampScore forces the reported score into [1,10]. A missing or unparseable
// score becomes 0, which can never qualify.
func clampScore(v any, noticeID string, logger *zap.Logger) int {
	f := coerceFloat(v)
	if math.IsNaN(f) {
		if v != nil && logger != nil {
			logger.Warn("scorer returned unparseable score", zap.String("notice_id", noticeID))
		}
		return 0
	}

	score := int(f)
	clamped := score
	if clamped > 10 {
		clamped = 10
	}
	if clamped < 1 {
		clamped = 1
	}
	if clamped != score && logger != nil {
		logger.Warn("scorer returned out-of-range score",
			zap.String("notice_id", noticeID),
			zap.Int("reported", score),
			zap.Int("clamped", clamped),
		)
	}
	return clamped
}

func parseCosts(v any) CostEstimate {
	estimate := CostEstimate{Components: map[string]float64{}}
	fields, ok := v.(map[string]any)
	if !ok {
		return estimate
	}

	for key, value := range fields {
		amount := coerceFloat(value)
		if math.IsNaN(amount) {
			continue
		}
		if key == "total" {
			estimate.Total = amount
			continue
		}
		estimate.Components[key] = amount
	}
	return estimate
}

func parseProfit(v any) ProfitEstimate {
	fields, ok := v.(map[string]any)
	if !ok {
		return ProfitEstimate{}
	}

	num := func(key string) float64 {
		f := coerceFloat(fields[key])
		if math.IsNaN(f) {
			return 0
		}
		return f
	}

	return ProfitEstimate{
		Revenue:     num("revenue"),
		Cost:        num("cost"),
		GrossProfit: num("gross_profit"),
		NetProfit:   num("net_profit"),
	}
}

// itemsNeeded accepts either track's field name.
func itemsNeeded(data map[string]any) []string {
	if items := coerceStringSlice(data["products_needed"]); len(items) > 0 {
		return items
	}
	return coerceStringSlice(data["services_needed"])
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
