package feedback

// KPIResult holds the headline metrics for the filtered dataset.
// AvgRating is nil when no filtered record carries a rating.
type KPIResult struct {
	TotalTickets int      `json:"total_tickets"`
	AvgRating    *float64 `json:"avg_rating"`
}

// TrendRow is one month bucket of the volume/rating trend.
type TrendRow struct {
	Month     string   `json:"month"` // "YYYY-MM"
	Volume    int      `json:"volume"`
	AvgRating *float64 `json:"avg_rating"`
}

// TrendSummary describes the overall direction of the monthly volume
// series via a least-squares slope over the month index.
type TrendSummary struct {
	Slope     float64 `json:"slope"`
	Direction string  `json:"direction"` // "rising", "falling", "flat"
	Months    int     `json:"months"`
}

// SegmentRow is one per-product aggregate.
type SegmentRow struct {
	Product   string   `json:"product"`
	Tickets   int      `json:"tickets"`
	AvgRating *float64 `json:"avg_rating"`
}

// KeywordRow is one keyword hotspot extracted from negative comments.
type KeywordRow struct {
	Keyword   string   `json:"keyword"`
	Count     int      `json:"count"`
	AvgRating *float64 `json:"avg_rating"`
}

// NegativeInsights bundles the filtered negative records (for browsing and
// export) with their aggregated keyword hotspots.
type NegativeInsights struct {
	Records  []CanonicalRecord `json:"records"`
	Keywords []KeywordRow      `json:"keywords"`
}

// Overview carries all four query results computed under one FilterSpec.
type Overview struct {
	KPI      KPIResult        `json:"kpi"`
	Trend    []TrendRow       `json:"trend"`
	TrendDir TrendSummary     `json:"trend_summary"`
	Segments []SegmentRow     `json:"segments"`
	Negative NegativeInsights `json:"negative"`
}
