package report

import (
	"fmt"
	"strings"
)

var (
	plainRule = strings.Repeat("=", 72)
	plainThin = strings.Repeat("-", 48)
)

// RenderPlain builds the plain-text alternative body. Same data and order as
// the HTML rendering.
func (r *Report) RenderPlain() string {
	var lines []string

	lines = append(lines,
		plainRule,
		"CONTRACT SCOUT -- DAILY OPPORTUNITY REPORT",
		fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02  15:04 UTC")),
		plainRule,
	)
	for _, tr := range r.Tracks {
		lines = append(lines, fmt.Sprintf("  %s: %d contracts | %d BID | Net potential: %s",
			tr.Track.Name, len(tr.Items), tr.BidCount(), money(tr.Buckets.QualifiedNet)))
	}
	lines = append(lines,
		fmt.Sprintf("  (Showing score >= %d only. Full log in the CSV file)", r.Thresholds.MinScore),
		plainRule,
	)

	for _, tr := range r.Tracks {
		lines = append(lines,
			"",
			tr.Track.PartTitle,
			"Business Model: "+tr.Track.PartSubtitle,
			plainRule,
			"",
			r.plainQualified(tr),
			"",
			r.plainMonitor(tr),
			"",
			plainRule,
		)
	}

	lines = append(lines, "Contract Scout | theworkedge.ai", plainRule)
	return strings.Join(lines, "\n")
}

func (r *Report) plainQualified(tr *TrackReport) string {
	qualified := tr.Buckets.Qualified
	lines := []string{fmt.Sprintf("NO PAST PERFORMANCE REQUIRED -- %d contracts | %s potential",
		len(qualified), money(tr.Buckets.QualifiedNet))}

	if len(qualified) == 0 {
		lines = append(lines, fmt.Sprintf("  No viable opportunities found today (all scored below %d/10).",
			r.Thresholds.MinScore))
		return strings.Join(lines, "\n")
	}

	for _, group := range tr.Buckets.Groups {
		lines = append(lines, "", fmt.Sprintf("%s -- %d contract%s | %s potential",
			strings.ToUpper(group.Name), len(group.Items), plural(len(group.Items)), money(group.NetProfit)))
		for rank, item := range group.Items {
			lines = append(lines, r.plainCard(tr, rank+1, item))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Report) plainMonitor(tr *TrackReport) string {
	monitor := tr.Buckets.Monitor
	lines := []string{fmt.Sprintf("NEEDS PAST PERFORMANCE -- %d contracts (monitor for future)", len(monitor))}

	if len(monitor) == 0 {
		lines = append(lines, "  No relevant opportunities requiring past performance today.")
		return strings.Join(lines, "\n")
	}

	for _, item := range tr.Buckets.Shown {
		opp := item.Opportunity
		lines = append(lines, fmt.Sprintf("  Score %d/10 -- %s", item.Score(), truncate(opp.Title, 65)))
		if opp.UILink != "" {
			lines = append(lines, "    "+opp.UILink)
		}
	}

	if tr.Buckets.Overflow > 0 {
		lines = append(lines, fmt.Sprintf("  ...and %d more (see CSV log)", tr.Buckets.Overflow))
	}
	return strings.Join(lines, "\n")
}

func (r *Report) plainCard(tr *TrackReport, rank int, item *Item) string {
	opp := item.Opportunity
	card := item.Card

	deadline := "N/A"
	if opp.ResponseDeadline != "" {
		deadline = truncate(opp.ResponseDeadline, 10)
	}
	daysNote := ""
	if days, ok := DaysUntil(opp.ResponseDeadline, r.GeneratedAt); ok {
		daysNote = fmt.Sprintf("  (%s)", pluralDays(days))
	}

	lines := []string{
		"",
		fmt.Sprintf("  #%d  SCORE: %d/10  [%s]", rank, card.Score, card.BidRecommendation),
		"  " + orDefault(opp.Title, "Untitled"),
		"  Agency: " + orDefault(opp.Agency(), "Unknown Agency"),
		fmt.Sprintf("  Sol #: %s | Deadline: %s%s", orDefault(opp.SolicitationNumber, "N/A"), deadline, daysNote),
		fmt.Sprintf("  Est Cost: %s | Gross: %s | Your net (%s): %s",
			money(card.Costs.Total), money(card.Profit.GrossProfit), tr.Track.MarginLabel, money(card.Profit.NetProfit)),
	}

	if items := joinItems(card.ItemsNeeded); items != "" {
		lines = append(lines, fmt.Sprintf("  %s: %s", tr.Track.ItemsLabel, items))
	}
	for _, h := range limit(card.Highlights, 3) {
		lines = append(lines, "    + "+h)
	}
	for _, risk := range limit(card.Risks, 2) {
		lines = append(lines, "    ! "+risk)
	}
	if card.RecommendationReason != "" {
		lines = append(lines, "  >> "+card.RecommendationReason)
	}
	if opp.UILink != "" {
		lines = append(lines, "  "+opp.UILink)
	}
	lines = append(lines, "  "+plainThin)

	return strings.Join(lines, "\n")
}
