package report

import (
	"fmt"
	"time"
)

// deadlineFormats are tried in order against the first 19 characters of the
// raw deadline string. The search API mixes full timestamps, bare dates and
// US-style dates across notices.
var deadlineFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// DaysUntil returns the whole-day difference between the deadline date and
// now's UTC date. The result may be negative for a passed deadline. The
// second return is false when the deadline cannot be parsed; the value is
// advisory and a parse failure is never an error.
func DaysUntil(deadline string, now time.Time) (int, bool) {
	parsed, ok := parseDeadline(deadline)
	if !ok {
		return 0, false
	}

	nowDate := now.UTC().Truncate(24 * time.Hour)
	deadlineDate := parsed.Truncate(24 * time.Hour)
	return int(deadlineDate.Sub(nowDate).Hours() / 24), true
}

// FormatDeadline renders "Mar 25, 2026 (36 days)" for display, falling back
// to the raw first 10 characters when the value is unparseable.
func FormatDeadline(deadline string, now time.Time) string {
	if deadline == "" || deadline == "N/A" {
		return "N/A"
	}

	parsed, ok := parseDeadline(deadline)
	if !ok {
		if len(deadline) > 10 {
			return deadline[:10]
		}
		return deadline
	}

	days, _ := DaysUntil(deadline, now)
	return fmt.Sprintf("%s (%s)", parsed.Format("Jan 2, 2006"), pluralDays(days))
}

func parseDeadline(deadline string) (time.Time, bool) {
	if deadline == "" {
		return time.Time{}, false
	}

	head := deadline
	if len(head) > 19 {
		head = head[:19]
	}

	for _, format := range deadlineFormats {
		if len(format) != len(head) {
			continue
		}
		parsed, err := time.Parse(format, head)
		if err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
