package feedback

// InsightConfig is the recognized configuration surface of the core.
// Every knob has a documented default; overriding any of them never
// requires touching query logic.
type InsightConfig struct {
	// NegativeRatingThreshold marks a record negative when its rating is
	// present and at or below this value (midpoint of a 1-5 scale).
	NegativeRatingThreshold float64 `json:"negative_rating_threshold"`

	// NegativeKeywords is the fallback for records without a rating: the
	// record is negative when its review text contains any of these terms.
	NegativeKeywords []string `json:"negative_keyword_list"`

	// StopWords are dropped during keyword hotspot tokenization.
	StopWords []string `json:"stop_word_list"`

	// MinTokenLength is the shortest token kept by the hotspot extractor.
	MinTokenLength int `json:"min_token_length"`

	// HotspotTopN caps the number of keyword rows returned.
	HotspotTopN int `json:"hotspot_top_n"`

	// Aliases maps each logical field to its accepted input column names,
	// in priority order. Lookup is case-insensitive; first match wins.
	Aliases map[LogicalField][]string `json:"alias_table"`
}

// DefaultAliases returns the built-in alias table. Order within each list
// is the documented tie-break priority.
func DefaultAliases() map[LogicalField][]string {
	return map[LogicalField][]string{
		FieldCreatedAt:  {"created_at", "date", "timestamp", "submitted_at"},
		FieldProduct:    {"product", "category", "service", "queue", "team"},
		FieldRating:     {"rating", "score", "stars", "satisfaction"},
		FieldReviewText: {"review_text", "comment", "message", "body", "feedback"},
	}
}

// DefaultInsightConfig returns the documented defaults.
func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		NegativeRatingThreshold: 3,
		NegativeKeywords: []string{
			"broken", "slow", "refund", "complaint", "unhappy",
			"crash", "bug", "cancel", "terrible", "awful",
		},
		StopWords:      defaultStopWords(),
		MinTokenLength: 3,
		HotspotTopN:    20,
		Aliases:        DefaultAliases(),
	}
}

func defaultStopWords() []string {
	return []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "this", "that",
		"to", "of", "in", "on", "for", "from", "with", "by", "as", "is",
		"are", "was", "were", "be", "been", "being", "i", "you", "he",
		"she", "it", "we", "they", "my", "your", "our", "their", "me",
		"us", "them", "not", "no", "yes", "very", "more", "most", "less",
		"least", "so", "too", "its", "im", "ive", "youre", "well", "cant",
		"wont", "didnt", "dont", "does", "do", "did", "could", "would",
		"should",
	}
}

// StopWordSet returns the stop words as a lookup set.
func (c InsightConfig) StopWordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.StopWords))
	for _, w := range c.StopWords {
		set[w] = struct{}{}
	}
	return set
}
