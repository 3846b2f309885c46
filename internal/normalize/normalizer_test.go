package normalize

import (
	"fmt"
	"testing"

	"feedbacklens/domain/feedback"
	"feedbacklens/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeRows(t *testing.T, headers []string, rows []feedback.RawRow) *feedback.CanonicalTable {
	t.Helper()
	mapper := schema.NewMapper(nil)
	mapping, warnings := mapper.Resolve(headers)
	n := NewNormalizer(feedback.DefaultInsightConfig())
	return n.Normalize(&feedback.RawTable{Headers: headers, Rows: rows}, mapping, warnings)
}

func TestNormalizeKeepsEveryRow(t *testing.T) {
	headers := []string{"date", "product", "rating", "comment"}
	rows := []feedback.RawRow{
		{"date": "2025-01-15", "product": "Widget", "rating": "2", "comment": "slow checkout"},
		{"date": "not a date", "product": "Widget", "rating": "junk", "comment": ""},
		{"date": "", "product": "", "rating": "", "comment": ""},
	}

	table := normalizeRows(t, headers, rows)

	require.Equal(t, len(rows), table.Len(), "no row may be dropped regardless of parse failures")
}

func TestNormalizeDerivedFields(t *testing.T) {
	table := normalizeRows(t,
		[]string{"date", "product", "rating", "comment"},
		[]feedback.RawRow{{"date": "2025-01-15", "product": "Widget", "rating": "2", "comment": "slow checkout"}},
	)

	rec := table.Records[0]
	require.NotNil(t, rec.CreatedAt)
	assert.Equal(t, "2025-01-15", rec.CreatedAt.String())
	assert.Equal(t, "2025-01", rec.Month)
	require.NotNil(t, rec.Rating)
	assert.Equal(t, 2.0, *rec.Rating)
	assert.Equal(t, "Widget", rec.Product)
	assert.True(t, rec.IsNegative)
}

func TestNormalizeUnparseableDateAndRatingBecomeNil(t *testing.T) {
	table := normalizeRows(t,
		[]string{"date", "product", "rating", "comment"},
		[]feedback.RawRow{{"date": "soon", "product": "Widget", "rating": "five", "comment": "ok"}},
	)

	rec := table.Records[0]
	assert.Nil(t, rec.CreatedAt)
	assert.Empty(t, rec.Month)
	assert.Nil(t, rec.Rating)
	assert.Equal(t, "soon", rec.CreatedAtRaw)

	var parseWarnings int
	for _, w := range table.Warnings {
		if w.Kind == feedback.WarnRowParse {
			parseWarnings++
		}
	}
	assert.Equal(t, 2, parseWarnings)
}

func TestNormalizeMissingProductColumnFallsBackToUnknown(t *testing.T) {
	table := normalizeRows(t,
		[]string{"date", "rating", "comment"},
		[]feedback.RawRow{
			{"date": "2025-01-15", "rating": "4", "comment": "fine"},
			{"date": "2025-01-16", "rating": "5", "comment": "great"},
		},
	)

	for _, rec := range table.Records {
		assert.Equal(t, feedback.UnknownProduct, rec.Product)
	}

	var unresolved []feedback.LogicalField
	for _, w := range table.Warnings {
		if w.Kind == feedback.WarnSchemaUnresolved {
			unresolved = append(unresolved, w.Field)
		}
	}
	assert.Equal(t, []feedback.LogicalField{feedback.FieldProduct}, unresolved)
}

func TestNegativityRuleBranches(t *testing.T) {
	cases := []struct {
		rating   string
		comment  string
		negative bool
	}{
		{"3", "anything", true},       // at threshold
		{"3.5", "anything", false},    // above threshold
		{"", "want a refund", true},   // keyword fallback
		{"", "love it", false},        // no rating, no keyword
		{"5", "broken refund", false}, // rating present wins over keywords
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			table := normalizeRows(t,
				[]string{"date", "product", "rating", "comment"},
				[]feedback.RawRow{{"date": "2025-01-15", "product": "P", "rating": tc.rating, "comment": tc.comment}},
			)
			assert.Equal(t, tc.negative, table.Records[0].IsNegative)
		})
	}
}

func TestNormalizeAcceptsCommonDateFormats(t *testing.T) {
	for _, raw := range []string{"2025-01-15", "2025/01/15", "01/15/2025", "Jan 15, 2025", "15 Jan 2025", "2025-01-15 09:30:00"} {
		table := normalizeRows(t,
			[]string{"date", "rating"},
			[]feedback.RawRow{{"date": raw, "rating": "4"}},
		)
		rec := table.Records[0]
		require.NotNil(t, rec.CreatedAt, "format %q should parse", raw)
		assert.Equal(t, "2025-01", rec.Month)
	}
}
