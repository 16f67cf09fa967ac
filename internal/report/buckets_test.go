package report

import (
	"testing"

	"github.com/theworkedge/contract-scout/internal/ai"
	"github.com/theworkedge/contract-scout/internal/samgov"
)

func item(id, category string, score int, requiresPP bool, netProfit float64) *Item {
	return &Item{
		Opportunity: &samgov.Opportunity{NoticeID: id, Title: id},
		Card: &ai.Scorecard{
			NoticeID:                id,
			Score:                   score,
			RequiresPastPerformance: requiresPP,
			Profit:                  ai.ProfitEstimate{NetProfit: netProfit},
		},
		Category: category,
	}
}

var dmeOrder = []string{
	"Wheelchairs - Power",
	"Hospital Beds",
	"Wheelchairs - Manual",
	"Mobility Scooters",
	"Patient Lifts",
	"Walkers and Mobility Aids",
	"Bathroom Safety",
	"Mixed DME",
	"Other Medical Equipment",
}

func TestPartitionSplitsByPastPerformanceAndScore(t *testing.T) {
	items := []*Item{
		item("a", "Hospital Beds", 9, false, 30000),
		item("b", "Hospital Beds", 4, false, 10000), // below qualified cutoff
		item("c", "Patient Lifts", 7, true, 20000),
		item("d", "Patient Lifts", 5, true, 15000), // below monitor cutoff
	}

	b := Partition(items, dmeOrder, DefaultThresholds())

	if len(b.Qualified) != 1 || b.Qualified[0].Card.NoticeID != "a" {
		t.Fatalf("unexpected qualified bucket: %+v", b.Qualified)
	}
	if len(b.Monitor) != 1 || b.Monitor[0].Card.NoticeID != "c" {
		t.Fatalf("unexpected monitor bucket: %+v", b.Monitor)
	}
	if b.QualifiedNet != 30000 {
		t.Fatalf("unexpected net subtotal: %v", b.QualifiedNet)
	}
}

func TestPartitionBoundaryScores(t *testing.T) {
	items := []*Item{
		item("at-min", "Hospital Beds", 5, false, 0),
		item("at-monitor-min", "Hospital Beds", 6, true, 0),
	}

	b := Partition(items, dmeOrder, DefaultThresholds())
	if len(b.Qualified) != 1 {
		t.Fatalf("score equal to MinScore must qualify, got %+v", b.Qualified)
	}
	if len(b.Monitor) != 1 {
		t.Fatalf("score equal to MonitorMinScore must be monitored, got %+v", b.Monitor)
	}
}

func TestPartitionStableSortDescending(t *testing.T) {
	items := []*Item{
		item("first-7", "Hospital Beds", 7, false, 0),
		item("nine", "Hospital Beds", 9, false, 0),
		item("second-7", "Hospital Beds", 7, false, 0),
	}

	b := Partition(items, dmeOrder, DefaultThresholds())
	got := []string{
		b.Qualified[0].Card.NoticeID,
		b.Qualified[1].Card.NoticeID,
		b.Qualified[2].Card.NoticeID,
	}
	want := []string{"nine", "first-7", "second-7"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}
}

func TestPartitionGroupsFollowDisplayOrder(t *testing.T) {
	items := []*Item{
		item("lift", "Patient Lifts", 6, false, 5000),
		item("power", "Wheelchairs - Power", 8, false, 40000),
		item("bed", "Hospital Beds", 7, false, 20000),
	}

	b := Partition(items, dmeOrder, DefaultThresholds())
	if len(b.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(b.Groups))
	}
	want := []string{"Wheelchairs - Power", "Hospital Beds", "Patient Lifts"}
	for i, group := range b.Groups {
		if group.Name != want[i] {
			t.Fatalf("group %d = %q, want %q", i, group.Name, want[i])
		}
	}
	if b.Groups[0].NetProfit != 40000 {
		t.Fatalf("unexpected group subtotal: %v", b.Groups[0].NetProfit)
	}
}

func TestPartitionAppendsUnlistedCategories(t *testing.T) {
	items := []*Item{
		item("odd", "Telehealth Kits", 7, false, 0),
		item("bed", "Hospital Beds", 6, false, 0),
	}

	b := Partition(items, dmeOrder, DefaultThresholds())
	if len(b.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(b.Groups))
	}
	if b.Groups[0].Name != "Hospital Beds" || b.Groups[1].Name != "Telehealth Kits" {
		t.Fatalf("unlisted category must come after listed ones: %+v", b.Groups)
	}
}

func TestPartitionMonitorCapAndOverflow(t *testing.T) {
	var items []*Item
	for _, id := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"} {
		items = append(items, item(id, "Hospital Beds", 8, true, 0))
	}

	b := Partition(items, dmeOrder, DefaultThresholds())
	if len(b.Monitor) != 7 {
		t.Fatalf("expected 7 monitored, got %d", len(b.Monitor))
	}
	if len(b.Shown) != 5 {
		t.Fatalf("expected 5 shown, got %d", len(b.Shown))
	}
	if b.Overflow != 2 {
		t.Fatalf("expected overflow 2, got %d", b.Overflow)
	}
}

func TestPartitionOverflowNeverNegative(t *testing.T) {
	items := []*Item{
		item("m1", "Hospital Beds", 8, true, 0),
		item("m2", "Hospital Beds", 7, true, 0),
	}

	b := Partition(items, dmeOrder, DefaultThresholds())
	if b.Overflow != 0 {
		t.Fatalf("expected overflow 0, got %d", b.Overflow)
	}
	if len(b.Shown) != 2 {
		t.Fatalf("expected all monitored shown, got %d", len(b.Shown))
	}
}

func TestPartitionAndBidCountTolerateMissingScorecard(t *testing.T) {
	items := []*Item{
		{Opportunity: &samgov.Opportunity{NoticeID: "bare"}, Category: "Hospital Beds"},
		item("scored", "Hospital Beds", 8, false, 10000),
	}

	b := Partition(items, dmeOrder, DefaultThresholds())
	if len(b.Qualified) != 1 || b.Qualified[0].Card.NoticeID != "scored" {
		t.Fatalf("item without a scorecard must not qualify: %+v", b.Qualified)
	}
	if len(b.Monitor) != 0 {
		t.Fatalf("item without a scorecard must not be monitored: %+v", b.Monitor)
	}

	tr := &TrackReport{Items: items, Buckets: b}
	if got := tr.BidCount(); got != 0 {
		t.Fatalf("expected 0 BID recommendations, got %d", got)
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	b := Partition(nil, dmeOrder, DefaultThresholds())
	if len(b.Qualified) != 0 || len(b.Monitor) != 0 || len(b.Groups) != 0 {
		t.Fatalf("expected empty buckets, got %+v", b)
	}
	if b.Overflow != 0 {
		t.Fatalf("expected overflow 0, got %d", b.Overflow)
	}
}
