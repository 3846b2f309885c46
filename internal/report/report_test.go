package report

import (
	"strings"
	"testing"

	"feedbacklens/domain/feedback"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestBuildMarkdown(t *testing.T) {
	ov := feedback.Overview{
		KPI: feedback.KPIResult{TotalTickets: 6, AvgRating: ptr(3.0)},
		Trend: []feedback.TrendRow{
			{Month: "2025-01", Volume: 2, AvgRating: ptr(3.5)},
			{Month: "2025-02", Volume: 4, AvgRating: ptr(2.5)},
		},
		TrendDir: feedback.TrendSummary{Slope: 2, Direction: "rising", Months: 2},
		Segments: []feedback.SegmentRow{{Product: "Widget", Tickets: 6, AvgRating: ptr(3.0)}},
		Negative: feedback.NegativeInsights{
			Records:  make([]feedback.CanonicalRecord, 3),
			Keywords: []feedback.KeywordRow{{Keyword: "slow", Count: 2, AvgRating: ptr(2.0)}},
		},
	}

	md := BuildMarkdown("widgets", feedback.FilterSpec{Products: []string{"Widget"}}, ov)

	assert.Contains(t, md, "# Feedback Insights: widgets")
	assert.Contains(t, md, "products: Widget")
	assert.Contains(t, md, "Total tickets: **6**")
	assert.Contains(t, md, "| 2025-01 | 2 | 3.50 |")
	assert.Contains(t, md, "rising")
	assert.Contains(t, md, "| slow | 2 | 2.00 |")
	assert.Contains(t, md, "3 negative comments")
}

func TestBuildMarkdownEmptyResults(t *testing.T) {
	md := BuildMarkdown("upload.csv", feedback.FilterSpec{}, feedback.Overview{})

	assert.Contains(t, md, "_Filters: none (all data)_")
	assert.Contains(t, md, "Average rating: **n/a**")
	assert.Contains(t, md, "No dated records")
	assert.False(t, strings.Contains(md, "| n/a | n/a |"))
}
