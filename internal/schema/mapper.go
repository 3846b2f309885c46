// Package schema resolves arbitrary input column names onto the four
// logical feedback fields using a declarative alias table.
package schema

import (
	"strings"

	"feedbacklens/domain/feedback"
)

// Mapper resolves column names against an alias table. It is a pure
// function of its inputs; construct once per configuration.
type Mapper struct {
	aliases map[feedback.LogicalField][]string
}

// NewMapper creates a mapper with the given alias table. A nil table
// falls back to the built-in defaults.
func NewMapper(aliases map[feedback.LogicalField][]string) *Mapper {
	if aliases == nil {
		aliases = feedback.DefaultAliases()
	}
	return &Mapper{aliases: aliases}
}

// Resolve maps raw column names onto the logical fields. Matching is
// case-insensitive; within a field the alias list order is the tie-break
// priority. Unresolved fields are absent from the mapping and reported as
// schema warnings; none of them is fatal.
func (m *Mapper) Resolve(columns []string) (feedback.FieldMapping, []feedback.Warning) {
	// Preserve the original header spelling for the mapping values.
	byLower := make(map[string]string, len(columns))
	for _, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, exists := byLower[key]; !exists {
			byLower[key] = col
		}
	}

	mapping := make(feedback.FieldMapping, len(m.aliases))
	var warnings []feedback.Warning
	for _, field := range feedback.LogicalFields() {
		col, ok := m.resolveField(field, byLower)
		if !ok {
			warnings = append(warnings, feedback.NewSchemaWarning(field))
			continue
		}
		mapping[field] = col
	}
	return mapping, warnings
}

func (m *Mapper) resolveField(field feedback.LogicalField, byLower map[string]string) (string, bool) {
	for _, alias := range m.aliases[field] {
		if col, ok := byLower[strings.ToLower(alias)]; ok {
			return col, true
		}
	}
	return "", false
}
