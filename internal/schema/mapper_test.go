package schema

import (
	"testing"

	"feedbacklens/domain/feedback"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAliases(t *testing.T) {
	mapper := NewMapper(nil)

	mapping, warnings := mapper.Resolve([]string{"Date", "Queue", "Satisfaction", "Feedback"})

	require.Empty(t, warnings)
	assert.Equal(t, "Date", mapping[feedback.FieldCreatedAt])
	assert.Equal(t, "Queue", mapping[feedback.FieldProduct])
	assert.Equal(t, "Satisfaction", mapping[feedback.FieldRating])
	assert.Equal(t, "Feedback", mapping[feedback.FieldReviewText])
}

func TestResolveExactNamesWinOverAliases(t *testing.T) {
	mapper := NewMapper(nil)

	// "created_at" is first in the alias list, so it beats "date".
	mapping, warnings := mapper.Resolve([]string{"date", "created_at", "rating", "comment"})

	require.Empty(t, warnings)
	assert.Equal(t, "created_at", mapping[feedback.FieldCreatedAt])
}

func TestResolveAliasOrderBreaksTies(t *testing.T) {
	mapper := NewMapper(nil)

	// Both "category" and "team" are product aliases; "category" comes first.
	mapping, _ := mapper.Resolve([]string{"team", "category", "rating"})

	assert.Equal(t, "category", mapping[feedback.FieldProduct])
}

func TestResolveUnresolvedFieldsWarnButDoNotFail(t *testing.T) {
	mapper := NewMapper(nil)

	mapping, warnings := mapper.Resolve([]string{"order_id", "sku"})

	assert.Empty(t, mapping)
	require.Len(t, warnings, 4)
	for _, w := range warnings {
		assert.Equal(t, feedback.WarnSchemaUnresolved, w.Kind)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	mapper := NewMapper(nil)

	mapping, _ := mapper.Resolve([]string{"TIMESTAMP", "Product", "STARS", "Message"})

	assert.Equal(t, "TIMESTAMP", mapping[feedback.FieldCreatedAt])
	assert.Equal(t, "Product", mapping[feedback.FieldProduct])
	assert.Equal(t, "STARS", mapping[feedback.FieldRating])
	assert.Equal(t, "Message", mapping[feedback.FieldReviewText])
}

func TestResolveCustomAliasTable(t *testing.T) {
	mapper := NewMapper(map[feedback.LogicalField][]string{
		feedback.FieldCreatedAt:  {"when"},
		feedback.FieldProduct:    {"line"},
		feedback.FieldRating:     {"nps"},
		feedback.FieldReviewText: {"verbatim"},
	})

	mapping, warnings := mapper.Resolve([]string{"When", "Line", "NPS", "Verbatim"})

	require.Empty(t, warnings)
	assert.Equal(t, "NPS", mapping[feedback.FieldRating])
}
