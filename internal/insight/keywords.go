package insight

import (
	"sort"
	"strings"
	"unicode"

	"feedbacklens/domain/feedback"
)

// HotspotExtractor tokenizes negative-comment text and aggregates keyword
// frequency and per-keyword average rating. Pure and stateless between
// calls.
type HotspotExtractor struct {
	stopWords map[string]struct{}
	minLen    int
	topN      int
}

// NewHotspotExtractor creates an extractor for the given configuration.
func NewHotspotExtractor(cfg feedback.InsightConfig) *HotspotExtractor {
	return &HotspotExtractor{
		stopWords: cfg.StopWordSet(),
		minLen:    cfg.MinTokenLength,
		topN:      cfg.HotspotTopN,
	}
}

// Extract aggregates keyword hotspots over negative records. Frequency
// counts every occurrence; the per-keyword average rating counts each
// record once even when the keyword repeats within its text, and skips
// records without a rating. Rows are sorted descending by count with ties
// broken ascending by keyword, truncated to the configured top-N.
func (h *HotspotExtractor) Extract(records []feedback.CanonicalRecord) []feedback.KeywordRow {
	counts := make(map[string]int)
	ratings := make(map[string][]float64)

	for _, rec := range records {
		tokens := h.Tokenize(rec.ReviewText)
		if len(tokens) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
			if rec.Rating == nil {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			ratings[tok] = append(ratings[tok], *rec.Rating)
		}
	}

	rows := make([]feedback.KeywordRow, 0, len(counts))
	for keyword, count := range counts {
		rows = append(rows, feedback.KeywordRow{
			Keyword:   keyword,
			Count:     count,
			AvgRating: roundedMean(ratings[keyword]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Keyword < rows[j].Keyword
	})

	if h.topN > 0 && len(rows) > h.topN {
		rows = rows[:h.topN]
	}
	return rows
}

// Tokenize lower-cases the text, splits on non-alphanumeric boundaries,
// and drops short tokens and stop words.
func (h *HotspotExtractor) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) < h.minLen {
			continue
		}
		if _, stop := h.stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
