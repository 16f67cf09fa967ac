package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/theworkedge/contract-scout/internal/ai"
	"github.com/theworkedge/contract-scout/internal/track"
)

// TrackReport is one track's merged items and their partitioned view.
type TrackReport struct {
	Track   track.Track
	Items   []*Item
	Buckets Buckets
}

func NewTrackReport(tr track.Track, items []*Item, th Thresholds) *TrackReport {
	return &TrackReport{
		Track:   tr,
		Items:   items,
		Buckets: Partition(items, tr.DisplayOrder, th),
	}
}

func (t *TrackReport) BidCount() int {
	count := 0
	for _, item := range t.Items {
		if item.Recommendation() == ai.RecommendationBid {
			count++
		}
	}
	return count
}

// Report is the full daily run output, ready to render as CSV rows and the
// two email bodies.
type Report struct {
	Tracks      []*TrackReport
	Thresholds  Thresholds
	GeneratedAt time.Time
}

func New(tracks []*TrackReport, th Thresholds, generatedAt time.Time) *Report {
	return &Report{
		Tracks:      tracks,
		Thresholds:  th,
		GeneratedAt: generatedAt.UTC(),
	}
}

// Summary is the headline stat block shared by both email renderings.
type Summary struct {
	HighPriority int
	Review       int
	Monitor      int
}

func (r *Report) Summary() Summary {
	var s Summary
	for _, tr := range r.Tracks {
		for _, item := range tr.Buckets.Qualified {
			if item.Score() >= 8 {
				s.HighPriority++
			} else {
				s.Review++
			}
		}
		s.Monitor += len(tr.Buckets.Monitor)
	}
	return s
}

// Subject renders the email subject with the run date and per-track counts.
func (r *Report) Subject() string {
	parts := make([]string, 0, len(r.Tracks)+1)
	parts = append(parts, fmt.Sprintf("Contract Scout Report — %s", r.GeneratedAt.Format("2006-01-02")))
	for _, tr := range r.Tracks {
		parts = append(parts, fmt.Sprintf("%s: %d (%d BID)", tr.Track.Name, len(tr.Items), tr.BidCount()))
	}
	return strings.Join(parts, " | ")
}
