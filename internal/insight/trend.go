package insight

import (
	"gonum.org/v1/gonum/stat"

	"feedbacklens/domain/feedback"
)

// slopeEpsilon is the volume-per-month change below which the trend is
// reported as flat.
const slopeEpsilon = 0.05

// SummarizeTrend fits a least-squares line through the monthly volume
// series (month index as x) and classifies the direction. Fewer than two
// months is always flat.
func SummarizeTrend(rows []feedback.TrendRow) feedback.TrendSummary {
	summary := feedback.TrendSummary{Direction: "flat", Months: len(rows)}
	if len(rows) < 2 {
		return summary
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = float64(i)
		ys[i] = float64(row.Volume)
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	summary.Slope = slope
	switch {
	case slope > slopeEpsilon:
		summary.Direction = "rising"
	case slope < -slopeEpsilon:
		summary.Direction = "falling"
	}
	return summary
}
