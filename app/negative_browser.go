package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
	"feedbacklens/internal/errors"
)

// NegativeSort selects the ordering of the negative-comment browser.
type NegativeSort string

const (
	SortMostRecent     NegativeSort = "most_recent"
	SortLowestRating   NegativeSort = "lowest_rating"
	SortLongestComment NegativeSort = "longest_comment"
	SortHighestRating  NegativeSort = "highest_rating"
)

// BrowseOptions are the presentation-side controls over the negative
// slice: sort mode and an optional case-insensitive text filter.
type BrowseOptions struct {
	Sort    NegativeSort
	Keyword string
}

// NegativeSlice returns the filtered negative records, text-filtered and
// sorted per the browse options.
func (s *InsightService) NegativeSlice(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec, opts BrowseOptions) ([]feedback.CanonicalRecord, error) {
	insights, err := s.NegativeInsights(ctx, id, filter)
	if err != nil {
		return nil, err
	}

	records := insights.Records
	if kw := strings.ToLower(strings.TrimSpace(opts.Keyword)); kw != "" {
		var matched []feedback.CanonicalRecord
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.ReviewText), kw) {
				matched = append(matched, rec)
			}
		}
		records = matched
	}

	sortNegatives(records, opts.Sort)
	return records, nil
}

func sortNegatives(records []feedback.CanonicalRecord, mode NegativeSort) {
	switch mode {
	case SortLowestRating:
		sort.SliceStable(records, func(i, j int) bool {
			if !ratingEqual(records[i], records[j]) {
				return ratingLess(records[i], records[j])
			}
			return dateLess(records[i], records[j])
		})
	case SortHighestRating:
		sort.SliceStable(records, func(i, j int) bool {
			if !ratingEqual(records[i], records[j]) {
				return ratingLess(records[j], records[i])
			}
			return dateLess(records[j], records[i])
		})
	case SortLongestComment:
		sort.SliceStable(records, func(i, j int) bool {
			li, lj := len(records[i].ReviewText), len(records[j].ReviewText)
			if li != lj {
				return li > lj
			}
			return dateLess(records[j], records[i])
		})
	default: // SortMostRecent
		sort.SliceStable(records, func(i, j int) bool {
			return dateLess(records[j], records[i])
		})
	}
}

// ratingLess orders present ratings ascending; records without a rating
// sort last either way.
func ratingLess(a, b feedback.CanonicalRecord) bool {
	if a.Rating == nil {
		return false
	}
	if b.Rating == nil {
		return true
	}
	return *a.Rating < *b.Rating
}

func ratingEqual(a, b feedback.CanonicalRecord) bool {
	if a.Rating == nil || b.Rating == nil {
		return a.Rating == b.Rating
	}
	return *a.Rating == *b.Rating
}

// dateLess orders by parsed date ascending with undated records last.
func dateLess(a, b feedback.CanonicalRecord) bool {
	if a.CreatedAt == nil {
		return false
	}
	if b.CreatedAt == nil {
		return true
	}
	return a.CreatedAt.Before(*b.CreatedAt)
}

// ExportNegativeCSV renders the browsed negative slice as CSV bytes.
func (s *InsightService) ExportNegativeCSV(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec, opts BrowseOptions) ([]byte, error) {
	records, err := s.NegativeSlice(ctx, id, filter, opts)
	if err != nil {
		return nil, err
	}
	return marshalCSV(records, false)
}

// ExportFilteredCSV renders the full filtered dataset (not just the
// negative slice) as CSV bytes, including derived columns.
func (s *InsightService) ExportFilteredCSV(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec) ([]byte, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if sess.table.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return marshalCSV(filter.Apply(sess.table.Records), true)
}

func marshalCSV(records []feedback.CanonicalRecord, derived bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"created_at", "product", "rating", "review_text"}
	if derived {
		header = append(header, "month", "is_negative")
	}
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV header")
	}

	for _, rec := range records {
		row := []string{formatDate(rec), rec.Product, formatRating(rec.Rating), rec.ReviewText}
		if derived {
			row = append(row, rec.Month, strconv.FormatBool(rec.IsNegative))
		}
		if err := w.Write(row); err != nil {
			return nil, errors.Wrap(err, "failed to write CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush CSV")
	}
	return buf.Bytes(), nil
}

func formatDate(rec feedback.CanonicalRecord) string {
	if rec.CreatedAt != nil {
		return rec.CreatedAt.String()
	}
	return rec.CreatedAtRaw
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
