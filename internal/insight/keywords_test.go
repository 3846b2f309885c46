package insight

import (
	"testing"

	"feedbacklens/domain/feedback"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func negRecord(rating *float64, text string) feedback.CanonicalRecord {
	return feedback.CanonicalRecord{Product: "Widget", Rating: rating, ReviewText: text, IsNegative: true}
}

func TestExtractCountsEveryOccurrence(t *testing.T) {
	extractor := NewHotspotExtractor(feedback.DefaultInsightConfig())

	rows := extractor.Extract([]feedback.CanonicalRecord{
		negRecord(ptr(1), "slow slow checkout"),
		negRecord(ptr(2), "slow delivery"),
	})

	require.NotEmpty(t, rows)
	assert.Equal(t, "slow", rows[0].Keyword)
	assert.Equal(t, 3, rows[0].Count)
	// Average counts each record once despite the repeated token.
	require.NotNil(t, rows[0].AvgRating)
	assert.Equal(t, 1.5, *rows[0].AvgRating)
}

func TestExtractDropsStopWordsAndShortTokens(t *testing.T) {
	extractor := NewHotspotExtractor(feedback.DefaultInsightConfig())

	tokens := extractor.Tokenize("it is SO slow, and the app... broken!!")

	assert.Equal(t, []string{"slow", "app", "broken"}, tokens)
}

func TestExtractSortsByCountThenKeyword(t *testing.T) {
	extractor := NewHotspotExtractor(feedback.DefaultInsightConfig())

	rows := extractor.Extract([]feedback.CanonicalRecord{
		negRecord(ptr(2), "refund refund"),
		negRecord(ptr(1), "broken checkout"),
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "refund", rows[0].Keyword)
	assert.Equal(t, "broken", rows[1].Keyword)
	assert.Equal(t, "checkout", rows[2].Keyword)
}

func TestExtractTruncatesToTopN(t *testing.T) {
	cfg := feedback.DefaultInsightConfig()
	cfg.HotspotTopN = 2
	extractor := NewHotspotExtractor(cfg)

	rows := extractor.Extract([]feedback.CanonicalRecord{
		negRecord(ptr(1), "alpha beta gamma delta"),
	})

	assert.Len(t, rows, 2)
}

func TestExtractNilRatingYieldsNilAverage(t *testing.T) {
	extractor := NewHotspotExtractor(feedback.DefaultInsightConfig())

	rows := extractor.Extract([]feedback.CanonicalRecord{
		negRecord(nil, "refund please"),
	})

	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Nil(t, row.AvgRating)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	extractor := NewHotspotExtractor(feedback.DefaultInsightConfig())
	assert.Empty(t, extractor.Extract(nil))
}
