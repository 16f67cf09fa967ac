package report

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
)

// Row is one CSV log line. The log is append-only across runs, so column
// order here is a compatibility contract.
type Row struct {
	DateFound      string `csv:"date_found"`
	Track          string `csv:"track"`
	Group          string `csv:"group"`
	Rank           int    `csv:"rank"`
	Category       string `csv:"category"`
	Title          string `csv:"title"`
	SolicitationID string `csv:"solicitation_id"`
	NAICS          string `csv:"naics"`
	Agency         string `csv:"agency"`
	Deadline       string `csv:"deadline"`
	DaysUntil      string `csv:"days_until_deadline"`
	Score          int    `csv:"score"`
	Recommendation string `csv:"recommendation"`
	NetProfit      string `csv:"net_profit"`
	Reasoning      string `csv:"reasoning"`
	SAMURL         string `csv:"sam_url"`
	Status         string `csv:"status"`
}

const (
	groupQualified = "qualified"
	groupMonitor   = "monitor"
)

// Rows flattens the report into CSV rows: qualified items per category group
// in display order, then the full monitor list, per track.
func (r *Report) Rows(now time.Time) []*Row {
	var rows []*Row
	for _, tr := range r.Tracks {
		for _, group := range tr.Buckets.Groups {
			for rank, item := range group.Items {
				rows = append(rows, newRow(now, tr.Track.Key, groupQualified, rank+1, item))
			}
		}
		for rank, item := range tr.Buckets.Monitor {
			rows = append(rows, newRow(now, tr.Track.Key, groupMonitor, rank+1, item))
		}
	}
	return rows
}

func newRow(now time.Time, trackKey, group string, rank int, item *Item) *Row {
	opp := item.Opportunity
	card := item.Card

	days := ""
	if d, ok := DaysUntil(opp.ResponseDeadline, now); ok {
		days = strconv.Itoa(d)
	}

	return &Row{
		DateFound:      now.UTC().Format("2006-01-02"),
		Track:          trackKey,
		Group:          group,
		Rank:           rank,
		Category:       item.Category,
		Title:          opp.Title,
		SolicitationID: opp.SolicitationNumber,
		NAICS:          opp.NAICSCode,
		Agency:         opp.Agency(),
		Deadline:       opp.ResponseDeadline,
		DaysUntil:      days,
		Score:          card.Score,
		Recommendation: card.BidRecommendation,
		NetProfit:      fmt.Sprintf("%.0f", card.Profit.NetProfit),
		Reasoning:      card.RecommendationReason,
		SAMURL:         opp.UILink,
		Status:         "new",
	}
}

// AppendCSV appends rows to the log file, writing the header only when the
// file did not exist before this call.
func AppendCSV(path string, rows []*Row) error {
	if len(rows) == 0 {
		return nil
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv log: %w", err)
	}

	if writeHeader {
		err = gocsv.MarshalFile(&rows, file)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, file)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("append csv log: %w", err)
	}

	return file.Close()
}
