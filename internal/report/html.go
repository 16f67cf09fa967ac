package report

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

func money(v float64) string {
	return moneyPrinter.Sprintf("$%.0f", v)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

const reportCSS = `
body{font-family:Arial,Helvetica,sans-serif;margin:0;padding:0;background:#f3f4f6;color:#1f2937}
.wrapper{max-width:760px;margin:0 auto;background:#fff}
.hdr{background:#1e40af;color:#fff;padding:22px 28px}
.hdr h1{margin:0 0 6px;font-size:20px;font-weight:700}
.hdr p{margin:0;font-size:13px;opacity:.85}
.summary{background:#eff6ff;border-left:4px solid #3b82f6;padding:16px 24px;margin:20px 24px;border-radius:4px}
.summary h2{margin:0 0 10px;font-size:15px;color:#1e40af}
.stat-grid{display:flex;flex-wrap:wrap;gap:10px 24px}
.stat-item{font-size:13px;color:#374151}
.stat-item b{font-size:18px;color:#1e40af;display:block}
.part-hdr{background:#1f2937;color:#fff;padding:12px 24px;margin-top:24px}
.part-hdr h2{margin:0;font-size:14px;letter-spacing:.03em}
.section{padding:4px 20px 12px}
.sec-label{font-size:11px;font-weight:700;color:#6b7280;text-transform:uppercase;letter-spacing:.06em;padding:14px 4px 6px;border-bottom:1px solid #e5e7eb;margin-bottom:10px}
.cat-hdr{font-size:12px;font-weight:700;color:#374151;margin:14px 0 4px;text-transform:uppercase;letter-spacing:.04em}
.card{border:1px solid #e5e7eb;border-radius:6px;margin:10px 0;overflow:hidden}
.card-hdr{padding:10px 14px;display:flex;align-items:center;gap:10px}
.card-hdr.bid{background:#f0fdf4;border-bottom:2px solid #86efac}
.card-hdr.nobid{background:#fff7ed;border-bottom:2px solid #fed7aa}
.score{font-size:22px;font-weight:700;min-width:44px}
.score.bid{color:#16a34a}
.score.nobid{color:#ea580c}
.rec{font-size:10px;font-weight:700;padding:2px 7px;border-radius:3px;white-space:nowrap}
.rec.bid{background:#dcfce7;color:#15803d}
.rec.nobid{background:#ffedd5;color:#c2410c}
.card-title{font-weight:700;font-size:14px;flex:1;line-height:1.3}
.card-body{padding:10px 14px;font-size:13px;line-height:1.5}
.row{margin:3px 0;color:#4b5563}
.row b{color:#111827}
.highlights{background:#f9fafb;border-radius:4px;padding:8px 12px;margin:8px 0;font-size:12px}
.hi{color:#15803d;margin:2px 0}
.ri{color:#b91c1c;margin:2px 0}
.sam-btn{display:inline-block;margin-top:10px;background:#2563eb;color:#fff;padding:7px 16px;border-radius:4px;text-decoration:none;font-size:12px;font-weight:700}
.brief{padding:6px 10px;border-left:3px solid #d1d5db;margin:4px 0;font-size:13px;color:#374151}
.no-opps{color:#9ca3af;font-style:italic;padding:10px 4px;font-size:13px}
.footer{text-align:center;padding:18px;font-size:11px;color:#9ca3af;border-top:1px solid #e5e7eb}
`

// RenderHTML builds the HTML email body. It presents exactly the data the
// plain rendering does, in the same order.
func (r *Report) RenderHTML() string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head><meta charset='UTF-8'><style>")
	b.WriteString(reportCSS)
	b.WriteString("</style></head><body><div class='wrapper'>")

	r.htmlHeader(&b)
	r.htmlSummary(&b)
	for _, tr := range r.Tracks {
		r.htmlPart(&b, tr)
	}

	b.WriteString("<div class='footer'>Contract Scout &mdash; theworkedge.ai</div>")
	b.WriteString("</div></body></html>")
	return b.String()
}

func (r *Report) htmlHeader(b *strings.Builder) {
	b.WriteString("<div class='hdr'><h1>Contract Scout &mdash; Daily Opportunity Report</h1><p>")
	fmt.Fprintf(b, "Generated: %s", html.EscapeString(r.GeneratedAt.Format("2006-01-02 15:04 UTC")))
	for _, tr := range r.Tracks {
		fmt.Fprintf(b, " &nbsp;|&nbsp; %s: %d contracts (%d BID)",
			html.EscapeString(tr.Track.Name), len(tr.Items), tr.BidCount())
	}
	b.WriteString("</p></div>")
}

func (r *Report) htmlSummary(b *strings.Builder) {
	s := r.Summary()

	b.WriteString("<div class='summary'><h2>&#x1F4CA; Today's Summary</h2><div class='stat-grid'>")
	fmt.Fprintf(b, "<div class='stat-item'><b>%d</b>High Priority (8-10)</div>", s.HighPriority)
	fmt.Fprintf(b, "<div class='stat-item'><b>%d</b>Review (%d-7)</div>", s.Review, r.Thresholds.MinScore)
	fmt.Fprintf(b, "<div class='stat-item'><b>%d</b>Monitor (needs PP)</div>", s.Monitor)
	for _, tr := range r.Tracks {
		fmt.Fprintf(b, "<div class='stat-item'><b>%s</b>%s Net Potential</div>",
			money(tr.Buckets.QualifiedNet), html.EscapeString(tr.Track.Name))
	}
	b.WriteString("</div></div>")
}

func (r *Report) htmlPart(b *strings.Builder, tr *TrackReport) {
	fmt.Fprintf(b, "<div class='part-hdr'><h2>%s<br><span style='font-size:11px;opacity:.75;font-weight:400'>%s</span></h2></div>",
		html.EscapeString(tr.Track.PartTitle), html.EscapeString(tr.Track.PartSubtitle))
	b.WriteString("<div class='section'>")
	r.htmlQualified(b, tr)
	r.htmlMonitor(b, tr)
	b.WriteString("</div>")
}

func (r *Report) htmlQualified(b *strings.Builder, tr *TrackReport) {
	qualified := tr.Buckets.Qualified
	fmt.Fprintf(b, "<div class='sec-label'>&#x2705; No Past Performance Required &mdash; %d contract%s | Net potential: %s</div>",
		len(qualified), plural(len(qualified)), money(tr.Buckets.QualifiedNet))

	if len(qualified) == 0 {
		fmt.Fprintf(b, "<div class='no-opps'>No viable opportunities found today (all scored below %d/10)</div>",
			r.Thresholds.MinScore)
		return
	}

	for _, group := range tr.Buckets.Groups {
		fmt.Fprintf(b, "<div class='cat-hdr'>%s &mdash; %d contract%s | %s potential</div>",
			html.EscapeString(group.Name), len(group.Items), plural(len(group.Items)), money(group.NetProfit))
		for rank, item := range group.Items {
			r.htmlCard(b, tr, rank+1, item)
		}
	}
}

func (r *Report) htmlMonitor(b *strings.Builder, tr *TrackReport) {
	monitor := tr.Buckets.Monitor
	fmt.Fprintf(b, "<div class='sec-label'>&#x23F3; Needs Past Performance &mdash; %d contract%s (monitor for future)</div>",
		len(monitor), plural(len(monitor)))

	if len(monitor) == 0 {
		b.WriteString("<div class='no-opps'>No relevant opportunities requiring past performance today.</div>")
		return
	}

	for _, item := range tr.Buckets.Shown {
		opp := item.Opportunity
		link := ""
		if opp.UILink != "" {
			link = fmt.Sprintf(" <a href='%s' target='_blank' style='color:#2563eb;font-size:11px'>[view]</a>",
				html.EscapeString(opp.UILink))
		}
		fmt.Fprintf(b, "<div class='brief'>Score %d/10 &mdash; %s &mdash; <em>%s</em>%s</div>",
			item.Score(), html.EscapeString(truncate(opp.Title, 70)),
			html.EscapeString(truncate(opp.Agency(), 50)), link)
	}

	if tr.Buckets.Overflow > 0 {
		fmt.Fprintf(b, "<div style='font-size:12px;color:#6b7280;padding:4px 4px'>...and %d more (see CSV log for full list)</div>",
			tr.Buckets.Overflow)
	}
}

func (r *Report) htmlCard(b *strings.Builder, tr *TrackReport, rank int, item *Item) {
	opp := item.Opportunity
	card := item.Card

	cls := "nobid"
	if card.BidRecommendation == "BID" {
		cls = "bid"
	}

	b.WriteString("<div class='card'>")
	fmt.Fprintf(b, "<div class='card-hdr %s'>", cls)
	fmt.Fprintf(b, "<div class='score %s'>#%d</div>", cls, rank)
	fmt.Fprintf(b, "<span class='score %s' style='font-size:18px'>%d/10</span>", cls, card.Score)
	fmt.Fprintf(b, "<span class='rec %s'>%s</span>", cls, html.EscapeString(card.BidRecommendation))
	fmt.Fprintf(b, "<span class='card-title'>%s</span>", html.EscapeString(orDefault(opp.Title, "Untitled")))
	b.WriteString("</div><div class='card-body'>")

	fmt.Fprintf(b, "<div class='row'><b>Agency:</b> %s</div>", html.EscapeString(orDefault(opp.Agency(), "Unknown Agency")))
	fmt.Fprintf(b, "<div class='row'><b>Sol #:</b> %s &nbsp;|&nbsp; <b>Posted:</b> %s</div>",
		html.EscapeString(orDefault(opp.SolicitationNumber, "N/A")),
		html.EscapeString(orDefault(truncate(opp.PostedDate, 10), "N/A")))
	fmt.Fprintf(b, "<div class='row'><b>Deadline:</b> %s</div>",
		html.EscapeString(FormatDeadline(opp.ResponseDeadline, r.GeneratedAt)))

	if items := joinItems(card.ItemsNeeded); items != "" {
		fmt.Fprintf(b, "<div class='row'><b>%s:</b> %s</div>",
			html.EscapeString(tr.Track.ItemsLabel), html.EscapeString(items))
	}

	if tr.Track.Key == "dme" {
		fmt.Fprintf(b, "<div class='row'><b>Est. Cost:</b> %s &nbsp;|&nbsp; <b>Gross:</b> %s &nbsp;|&nbsp; <b>Your net (%s):</b> <strong>%s</strong></div>",
			money(card.Costs.Total), money(card.Profit.GrossProfit), tr.Track.MarginLabel, money(card.Profit.NetProfit))
	} else {
		fmt.Fprintf(b, "<div class='row'><b>Revenue:</b> %s &nbsp;|&nbsp; <b>Expenses:</b> %s &nbsp;|&nbsp; <b>Your net (%s):</b> <strong>%s</strong></div>",
			money(card.Profit.Revenue), money(card.Costs.Total), tr.Track.MarginLabel, money(card.Profit.NetProfit))
	}

	highlights := limit(card.Highlights, 3)
	risks := limit(card.Risks, 2)
	if len(highlights) > 0 || len(risks) > 0 {
		b.WriteString("<div class='highlights'>")
		for _, h := range highlights {
			fmt.Fprintf(b, "<div class='hi'>&#x2713; %s</div>", html.EscapeString(h))
		}
		for _, risk := range risks {
			fmt.Fprintf(b, "<div class='ri'>&#x26A0; %s</div>", html.EscapeString(risk))
		}
		if card.RecommendationReason != "" {
			fmt.Fprintf(b, "<div style='font-size:12px;color:#374151;margin-top:4px'><em>%s</em></div>",
				html.EscapeString(card.RecommendationReason))
		}
		b.WriteString("</div>")
	}

	if card.PastPerformanceDetails != "" {
		fmt.Fprintf(b, "<div class='row' style='font-size:12px;color:#7c3aed'><b>Past perf note:</b> %s</div>",
			html.EscapeString(card.PastPerformanceDetails))
	}

	if opp.UILink != "" {
		fmt.Fprintf(b, "<a href='%s' class='sam-btn' target='_blank'>&#x2192; View on SAM.gov</a>",
			html.EscapeString(opp.UILink))
	}

	b.WriteString("</div></div>")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func joinItems(items []string) string {
	return strings.Join(limit(items, 3), ", ")
}
