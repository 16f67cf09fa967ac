package report

import (
	"strings"
	"testing"
	"time"

	"github.com/theworkedge/contract-scout/internal/ai"
	"github.com/theworkedge/contract-scout/internal/samgov"
	"github.com/theworkedge/contract-scout/internal/track"
)

func fullItem(id, category string, score int, requiresPP bool, rec string, netProfit float64) *Item {
	return &Item{
		Opportunity: &samgov.Opportunity{
			NoticeID:           id,
			Title:              "Title " + id,
			SolicitationNumber: "SOL-" + id,
			NAICSCode:          "423450",
			DepartmentName:     "VETERANS AFFAIRS, DEPARTMENT OF",
			ResponseDeadline:   "2026-03-25T17:00:00",
			UILink:             "https://sam.gov/opp/" + id,
		},
		Card: &ai.Scorecard{
			NoticeID:                id,
			Score:                   score,
			RequiresPastPerformance: requiresPP,
			BidRecommendation:       rec,
			Profit:                  ai.ProfitEstimate{NetProfit: netProfit, GrossProfit: netProfit * 1.2},
			Costs:                   ai.CostEstimate{Total: netProfit * 2},
			RecommendationReason:    "reason for " + id,
		},
		Category: category,
	}
}

func testReport() *Report {
	th := DefaultThresholds()
	dme := NewTrackReport(track.DME(), []*Item{
		fullItem("d1", "Wheelchairs - Power", 9, false, "BID", 40000),
		fullItem("d2", "Hospital Beds", 6, false, "NO-BID", 12000),
		fullItem("d3", "Patient Lifts", 7, true, "NO-BID", 8000),
	}, th)
	consulting := NewTrackReport(track.Consulting(), []*Item{
		fullItem("c1", "Process Improvement", 8, false, "BID", 60000),
	}, th)

	generated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return New([]*TrackReport{dme, consulting}, th, generated)
}

func TestSummaryCounts(t *testing.T) {
	s := testReport().Summary()

	if s.HighPriority != 2 {
		t.Fatalf("expected 2 high priority, got %d", s.HighPriority)
	}
	if s.Review != 1 {
		t.Fatalf("expected 1 review, got %d", s.Review)
	}
	if s.Monitor != 1 {
		t.Fatalf("expected 1 monitor, got %d", s.Monitor)
	}
}

func TestSubjectLine(t *testing.T) {
	got := testReport().Subject()
	want := "Contract Scout Report — 2026-03-01 | DME: 3 (1 BID) | Consulting: 1 (1 BID)"
	if got != want {
		t.Fatalf("subject = %q, want %q", got, want)
	}
}

func TestRowsCoverBothBuckets(t *testing.T) {
	r := testReport()
	rows := r.Rows(r.GeneratedAt)

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Track != "dme" || first.Group != "qualified" || first.Rank != 1 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Category != "Wheelchairs - Power" {
		t.Fatalf("unexpected first row category: %q", first.Category)
	}
	if first.DateFound != "2026-03-01" {
		t.Fatalf("unexpected date_found: %q", first.DateFound)
	}
	if first.DaysUntil != "24" {
		t.Fatalf("unexpected days_until_deadline: %q", first.DaysUntil)
	}
	if first.Status != "new" {
		t.Fatalf("unexpected status: %q", first.Status)
	}

	monitorRow := rows[2]
	if monitorRow.Group != "monitor" || monitorRow.Score != 7 {
		t.Fatalf("unexpected monitor row: %+v", monitorRow)
	}

	last := rows[3]
	if last.Track != "consulting" || last.Group != "qualified" {
		t.Fatalf("unexpected last row: %+v", last)
	}
}

func TestRenderingsPresentSameData(t *testing.T) {
	r := testReport()
	htmlBody := r.RenderHTML()
	plainBody := r.RenderPlain()

	for _, want := range []string{
		"Title d1", "Title d2", "Title d3", "Title c1",
		"9/10", "6/10", "7/10",
		"$40,000", "$12,000", "$60,000",
		"https://sam.gov/opp/d1",
	} {
		if !strings.Contains(htmlBody, want) {
			t.Fatalf("html body missing %q", want)
		}
		if !strings.Contains(plainBody, want) {
			t.Fatalf("plain body missing %q", want)
		}
	}

	// Qualified cards appear in the same order in both bodies.
	for _, body := range []string{htmlBody, plainBody} {
		d1 := strings.Index(body, "Title d1")
		d2 := strings.Index(body, "Title d2")
		c1 := strings.Index(body, "Title c1")
		if !(d1 < d2 && d2 < c1) {
			t.Fatalf("unexpected card order: d1=%d d2=%d c1=%d", d1, d2, c1)
		}
	}
}

func TestRenderMonitorOverflow(t *testing.T) {
	th := DefaultThresholds()
	var items []*Item
	for _, id := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8"} {
		items = append(items, fullItem(id, "Hospital Beds", 8, true, "NO-BID", 0))
	}
	r := New([]*TrackReport{NewTrackReport(track.DME(), items, th)},
		th, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	htmlBody := r.RenderHTML()
	plainBody := r.RenderPlain()

	if !strings.Contains(htmlBody, "...and 3 more") {
		t.Fatal("html body missing overflow note")
	}
	if !strings.Contains(plainBody, "...and 3 more") {
		t.Fatal("plain body missing overflow note")
	}
	if strings.Contains(htmlBody, "Title m6") {
		t.Fatal("html body must not show items past the monitor cap")
	}
}

func TestRenderEmptyReport(t *testing.T) {
	th := DefaultThresholds()
	r := New([]*TrackReport{
		NewTrackReport(track.DME(), nil, th),
		NewTrackReport(track.Consulting(), nil, th),
	}, th, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	htmlBody := r.RenderHTML()
	if !strings.Contains(htmlBody, "No viable opportunities found today") {
		t.Fatal("html body missing empty-qualified note")
	}
	if !strings.Contains(htmlBody, "No relevant opportunities requiring past performance") {
		t.Fatal("html body missing empty-monitor note")
	}

	plainBody := r.RenderPlain()
	if !strings.Contains(plainBody, "No viable opportunities found today") {
		t.Fatal("plain body missing empty-qualified note")
	}
}
