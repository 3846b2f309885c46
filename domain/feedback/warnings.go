package feedback

import "fmt"

// WarningKind classifies non-fatal problems encountered while loading a
// dataset. Warnings never abort the load; they are collected on the
// canonical table so the caller can surface them.
type WarningKind string

const (
	// WarnSchemaUnresolved means a logical field matched no input column.
	WarnSchemaUnresolved WarningKind = "schema_unresolved"
	// WarnRowParse means a single row's date or rating was unparseable.
	WarnRowParse WarningKind = "row_parse"
)

// Warning records one non-fatal load problem.
type Warning struct {
	Kind  WarningKind  `json:"kind"`
	Field LogicalField `json:"field"`
	Row   int          `json:"row,omitempty"` // zero-based row index, -1 for schema warnings
	Value string       `json:"value,omitempty"`
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnSchemaUnresolved:
		return fmt.Sprintf("no column resolved for %s", w.Field)
	case WarnRowParse:
		return fmt.Sprintf("row %d: unparseable %s value %q", w.Row, w.Field, w.Value)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Field)
	}
}

// NewSchemaWarning builds a warning for an unresolved logical field.
func NewSchemaWarning(field LogicalField) Warning {
	return Warning{Kind: WarnSchemaUnresolved, Field: field, Row: -1}
}

// NewRowParseWarning builds a warning for a single unparseable cell.
func NewRowParseWarning(field LogicalField, row int, value string) Warning {
	return Warning{Kind: WarnRowParse, Field: field, Row: row, Value: value}
}
