// Package report renders the four query results as a markdown insight
// report. The HTTP layer decides whether to serve it raw or as HTML.
package report

import (
	"fmt"
	"strings"

	"feedbacklens/domain/feedback"
)

// BuildMarkdown renders an overview into a markdown document.
func BuildMarkdown(datasetName string, filter feedback.FilterSpec, ov feedback.Overview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Feedback Insights: %s\n\n", datasetName)
	writeFilterLine(&b, filter)

	b.WriteString("## KPIs\n\n")
	fmt.Fprintf(&b, "- Total tickets: **%d**\n", ov.KPI.TotalTickets)
	fmt.Fprintf(&b, "- Average rating: **%s**\n\n", formatRating(ov.KPI.AvgRating))

	b.WriteString("## Monthly Trend\n\n")
	if len(ov.Trend) == 0 {
		b.WriteString("No dated records for the selected filters.\n\n")
	} else {
		b.WriteString("| Month | Volume | Avg Rating |\n|---|---|---|\n")
		for _, row := range ov.Trend {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", row.Month, row.Volume, formatRating(row.AvgRating))
		}
		fmt.Fprintf(&b, "\nVolume is **%s** over %d months (slope %.2f/month).\n\n",
			ov.TrendDir.Direction, ov.TrendDir.Months, ov.TrendDir.Slope)
	}

	b.WriteString("## Segments by Product\n\n")
	if len(ov.Segments) == 0 {
		b.WriteString("No records for the selected filters.\n\n")
	} else {
		b.WriteString("| Product | Tickets | Avg Rating |\n|---|---|---|\n")
		for _, row := range ov.Segments {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", row.Product, row.Tickets, formatRating(row.AvgRating))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Negative Insights\n\n")
	fmt.Fprintf(&b, "%d negative comments matched the filters.\n\n", len(ov.Negative.Records))
	if len(ov.Negative.Keywords) > 0 {
		b.WriteString("Top keywords (lower avg rating = more pain):\n\n")
		b.WriteString("| Keyword | Mentions | Avg Rating |\n|---|---|---|\n")
		for _, row := range ov.Negative.Keywords {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", row.Keyword, row.Count, formatRating(row.AvgRating))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeFilterLine(b *strings.Builder, filter feedback.FilterSpec) {
	var parts []string
	if len(filter.Products) > 0 {
		parts = append(parts, fmt.Sprintf("products: %s", strings.Join(filter.Products, ", ")))
	}
	if filter.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("from %s", filter.DateFrom))
	}
	if filter.DateTo != nil {
		parts = append(parts, fmt.Sprintf("to %s", filter.DateTo))
	}
	if len(parts) == 0 {
		b.WriteString("_Filters: none (all data)_\n\n")
		return
	}
	fmt.Fprintf(b, "_Filters: %s_\n\n", strings.Join(parts, "; "))
}

func formatRating(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *r)
}
