package feedback

import (
	"feedbacklens/domain/core"
)

// FilterSpec describes the active product subset and date range for a
// query. It is constructed fresh per interaction, is immutable, and is
// never stored in the canonical table.
//
// An empty Products slice means "all products". A nil date bound means the
// corresponding side of the range is open. Rows without a parsed date are
// excluded only while a date bound is active.
type FilterSpec struct {
	Products []string   `json:"products,omitempty"`
	DateFrom *core.Date `json:"date_from,omitempty"`
	DateTo   *core.Date `json:"date_to,omitempty"`
}

// Validate rejects inverted date ranges.
func (f FilterSpec) Validate() error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return core.NewInvalidFilterError("date_from is after date_to")
	}
	return nil
}

// Matches reports whether a record passes the filter.
func (f FilterSpec) Matches(rec CanonicalRecord) bool {
	if len(f.Products) > 0 && !f.hasProduct(rec.Product) {
		return false
	}
	if f.DateFrom != nil {
		if rec.CreatedAt == nil || rec.CreatedAt.Before(*f.DateFrom) {
			return false
		}
	}
	if f.DateTo != nil {
		if rec.CreatedAt == nil || rec.CreatedAt.After(*f.DateTo) {
			return false
		}
	}
	return true
}

func (f FilterSpec) hasProduct(product string) bool {
	for _, p := range f.Products {
		if p == product {
			return true
		}
	}
	return false
}

// Apply returns the records passing the filter, preserving input order.
func (f FilterSpec) Apply(records []CanonicalRecord) []CanonicalRecord {
	var out []CanonicalRecord
	for _, rec := range records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
