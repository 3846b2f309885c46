// Package normalize turns a raw tabular dataset plus a field mapping into
// the canonical in-memory table with derived columns.
package normalize

import (
	"strconv"
	"strings"

	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
)

// Normalizer builds canonical records from raw rows. Runs once per loaded
// dataset; deterministic given identical input and mapping.
type Normalizer struct {
	cfg       feedback.InsightConfig
	negatives []string // lowercased negative keyword list
}

// NewNormalizer creates a normalizer for the given configuration.
func NewNormalizer(cfg feedback.InsightConfig) *Normalizer {
	negatives := make([]string, len(cfg.NegativeKeywords))
	for i, kw := range cfg.NegativeKeywords {
		negatives[i] = strings.ToLower(kw)
	}
	return &Normalizer{cfg: cfg, negatives: negatives}
}

// Normalize produces one canonical record per raw row. Rows are never
// dropped: unparseable dates and ratings become nil fields plus a row
// parse warning, and an empty or unresolved product falls back to
// feedback.UnknownProduct.
func (n *Normalizer) Normalize(raw *feedback.RawTable, mapping feedback.FieldMapping, schemaWarnings []feedback.Warning) *feedback.CanonicalTable {
	table := &feedback.CanonicalTable{
		Records:  make([]feedback.CanonicalRecord, 0, len(raw.Rows)),
		Mapping:  mapping,
		Warnings: append([]feedback.Warning(nil), schemaWarnings...),
	}

	for i, row := range raw.Rows {
		rec := feedback.CanonicalRecord{
			CreatedAtRaw: lookup(row, mapping, feedback.FieldCreatedAt),
			Product:      lookup(row, mapping, feedback.FieldProduct),
			ReviewText:   lookup(row, mapping, feedback.FieldReviewText),
		}

		if rec.CreatedAtRaw != "" {
			if d, ok := core.ParseDate(rec.CreatedAtRaw); ok {
				rec.CreatedAt = &d
				rec.Month = d.Month()
			} else {
				table.Warnings = append(table.Warnings, feedback.NewRowParseWarning(feedback.FieldCreatedAt, i, rec.CreatedAtRaw))
			}
		}

		if rawRating := lookup(row, mapping, feedback.FieldRating); rawRating != "" {
			if v, err := strconv.ParseFloat(strings.TrimSpace(rawRating), 64); err == nil {
				rec.Rating = &v
			} else {
				table.Warnings = append(table.Warnings, feedback.NewRowParseWarning(feedback.FieldRating, i, rawRating))
			}
		}

		if strings.TrimSpace(rec.Product) == "" {
			rec.Product = feedback.UnknownProduct
		}

		rec.IsNegative = n.isNegative(rec)
		table.Records = append(table.Records, rec)
	}

	return table
}

// isNegative applies the two-branch negativity rule: a present rating at
// or below the threshold, or, only when the rating is absent, a review
// text containing any configured negative keyword.
func (n *Normalizer) isNegative(rec feedback.CanonicalRecord) bool {
	if rec.Rating != nil {
		return *rec.Rating <= n.cfg.NegativeRatingThreshold
	}
	text := strings.ToLower(rec.ReviewText)
	if text == "" {
		return false
	}
	for _, kw := range n.negatives {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lookup(row feedback.RawRow, mapping feedback.FieldMapping, field feedback.LogicalField) string {
	col, ok := mapping.Column(field)
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[col])
}
