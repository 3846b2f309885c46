// Package insight implements the four analytical queries (KPI, trend,
// segments, negative insights) as pure in-memory aggregations over the
// canonical table.
package insight

import (
	"context"
	"sort"

	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
	"feedbacklens/ports"

	"github.com/montanaflynn/stats"
)

// Engine is the in-memory query engine. All operations are read-only and
// side-effect free; the same table can be queried concurrently with
// different filters.
type Engine struct {
	extractor *HotspotExtractor
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg feedback.InsightConfig) *Engine {
	return &Engine{extractor: NewHotspotExtractor(cfg)}
}

var _ ports.QueryEngine = (*Engine)(nil)

// KPI returns ticket count and the 2-decimal mean rating over the
// filtered records. Null ratings are skipped by the mean, never by the
// count.
func (e *Engine) KPI(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) (feedback.KPIResult, error) {
	if table.IsEmpty() {
		return feedback.KPIResult{}, core.ErrEmptyDataset
	}
	if err := filter.Validate(); err != nil {
		return feedback.KPIResult{}, err
	}

	var ratings []float64
	total := 0
	for _, rec := range table.Records {
		if !filter.Matches(rec) {
			continue
		}
		total++
		if rec.Rating != nil {
			ratings = append(ratings, *rec.Rating)
		}
	}

	return feedback.KPIResult{
		TotalTickets: total,
		AvgRating:    roundedMean(ratings),
	}, nil
}

// Trend groups filtered records by month bucket. Records without a month
// are excluded from the grouping but were still eligible for KPI counts.
func (e *Engine) Trend(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) ([]feedback.TrendRow, error) {
	if table.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	type bucket struct {
		volume  int
		ratings []float64
	}
	buckets := make(map[string]*bucket)
	for _, rec := range table.Records {
		if rec.Month == "" || !filter.Matches(rec) {
			continue
		}
		b := buckets[rec.Month]
		if b == nil {
			b = &bucket{}
			buckets[rec.Month] = b
		}
		b.volume++
		if rec.Rating != nil {
			b.ratings = append(b.ratings, *rec.Rating)
		}
	}

	rows := make([]feedback.TrendRow, 0, len(buckets))
	for month, b := range buckets {
		rows = append(rows, feedback.TrendRow{
			Month:     month,
			Volume:    b.volume,
			AvgRating: roundedMean(b.ratings),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

// Segment groups filtered records by product, descending by ticket count
// with ties broken ascending by product name.
func (e *Engine) Segment(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) ([]feedback.SegmentRow, error) {
	if table.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	type bucket struct {
		tickets int
		ratings []float64
	}
	buckets := make(map[string]*bucket)
	for _, rec := range table.Records {
		if !filter.Matches(rec) {
			continue
		}
		b := buckets[rec.Product]
		if b == nil {
			b = &bucket{}
			buckets[rec.Product] = b
		}
		b.tickets++
		if rec.Rating != nil {
			b.ratings = append(b.ratings, *rec.Rating)
		}
	}

	rows := make([]feedback.SegmentRow, 0, len(buckets))
	for product, b := range buckets {
		rows = append(rows, feedback.SegmentRow{
			Product:   product,
			Tickets:   b.tickets,
			AvgRating: roundedMean(b.ratings),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tickets != rows[j].Tickets {
			return rows[i].Tickets > rows[j].Tickets
		}
		return rows[i].Product < rows[j].Product
	})
	return rows, nil
}

// NegativeInsights narrows the filtered set to negative records and
// returns them together with their keyword hotspots.
func (e *Engine) NegativeInsights(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) (feedback.NegativeInsights, error) {
	if table.IsEmpty() {
		return feedback.NegativeInsights{}, core.ErrEmptyDataset
	}
	if err := filter.Validate(); err != nil {
		return feedback.NegativeInsights{}, err
	}

	var negatives []feedback.CanonicalRecord
	for _, rec := range table.Records {
		if rec.IsNegative && filter.Matches(rec) {
			negatives = append(negatives, rec)
		}
	}

	return feedback.NegativeInsights{
		Records:  negatives,
		Keywords: e.extractor.Extract(negatives),
	}, nil
}

// roundedMean returns the 2-decimal mean of values, or nil when there are
// none.
func roundedMean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return nil
	}
	return &rounded
}
