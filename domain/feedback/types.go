package feedback

import (
	"feedbacklens/domain/core"
)

// LogicalField identifies one of the four canonical attributes every
// feedback row is mapped onto, regardless of the input column names.
type LogicalField string

const (
	FieldCreatedAt  LogicalField = "created_at"
	FieldProduct    LogicalField = "product"
	FieldRating     LogicalField = "rating"
	FieldReviewText LogicalField = "review_text"
)

// LogicalFields lists the canonical fields in their documented order.
func LogicalFields() []LogicalField {
	return []LogicalField{FieldCreatedAt, FieldProduct, FieldRating, FieldReviewText}
}

// UnknownProduct is the fallback product label for rows whose product
// column is unresolved or empty.
const UnknownProduct = "Unknown"

// RawRow represents a single input row as raw string key-value pairs.
type RawRow map[string]string

// RawTable represents the complete uploaded dataset before normalization.
// It is owned by the caller and read-only to the core.
type RawTable struct {
	Headers []string // Column headers in file order
	Rows    []RawRow // Data rows
}

// FieldMapping records, per logical field, which input column it resolved
// to. An absent entry means the field is unresolved for this dataset.
// Built once per dataset and immutable thereafter.
type FieldMapping map[LogicalField]string

// Column returns the resolved input column for a logical field.
func (m FieldMapping) Column(field LogicalField) (string, bool) {
	col, ok := m[field]
	return col, ok
}

// Resolved returns true when the logical field mapped to an input column.
func (m FieldMapping) Resolved(field LogicalField) bool {
	_, ok := m[field]
	return ok
}

// CanonicalRecord is one normalized feedback row. CreatedAt and Rating are
// nil when the raw value was missing or unparseable; the record itself is
// always kept so counts never silently shrink.
type CanonicalRecord struct {
	CreatedAtRaw string     `json:"created_at_raw"`
	CreatedAt    *core.Date `json:"created_at"`
	Month        string     `json:"month,omitempty"` // "YYYY-MM", empty when CreatedAt is nil
	Product      string     `json:"product"`         // never empty, defaults to UnknownProduct
	Rating       *float64   `json:"rating"`
	ReviewText   string     `json:"review_text"`
	IsNegative   bool       `json:"is_negative"`
}

// CanonicalTable is the normalized row set for one loaded dataset, built
// once at load time and treated as read-only for the session.
type CanonicalTable struct {
	Records  []CanonicalRecord
	Mapping  FieldMapping
	Warnings []Warning
}

// Len returns the number of records in the table.
func (t *CanonicalTable) Len() int {
	return len(t.Records)
}

// IsEmpty reports whether the table holds no records.
func (t *CanonicalTable) IsEmpty() bool {
	return t == nil || len(t.Records) == 0
}

// Products returns the distinct product labels in first-seen order.
func (t *CanonicalTable) Products() []string {
	seen := make(map[string]struct{})
	var products []string
	for _, rec := range t.Records {
		if _, ok := seen[rec.Product]; ok {
			continue
		}
		seen[rec.Product] = struct{}{}
		products = append(products, rec.Product)
	}
	return products
}

// DateRange returns the earliest and latest parsed dates in the table,
// or nil/nil when no row carries a date.
func (t *CanonicalTable) DateRange() (*core.Date, *core.Date) {
	var min, max *core.Date
	for i := range t.Records {
		d := t.Records[i].CreatedAt
		if d == nil {
			continue
		}
		if min == nil || d.Before(*min) {
			min = d
		}
		if max == nil || d.After(*max) {
			max = d
		}
	}
	return min, max
}
