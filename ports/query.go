package ports

import (
	"context"

	"feedbacklens/domain/feedback"
)

// QueryEngine answers the four analytical queries against a canonical
// table under a FilterSpec. Implementations must be read-only and safe to
// re-run repeatedly with different filters against the same table.
//
// Every method returns core.ErrEmptyDataset when the table holds no
// records; an empty *filtered* set is a well-defined empty result instead.
type QueryEngine interface {
	// KPI returns the ticket count and 2-decimal average rating.
	KPI(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) (feedback.KPIResult, error)

	// Trend groups by month bucket, ascending by month string. Records
	// without a month bucket are excluded from the grouping only.
	Trend(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) ([]feedback.TrendRow, error)

	// Segment groups by product, descending by ticket count with ties
	// broken ascending by product name.
	Segment(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) ([]feedback.SegmentRow, error)

	// NegativeInsights returns the filtered negative records plus their
	// keyword hotspots.
	NegativeInsights(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) (feedback.NegativeInsights, error)
}
