// Package testkit generates deterministic synthetic feedback datasets.
// They double as the bundled "sample dataset" source for the UI and as
// fixtures for tests.
package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
	"feedbacklens/ports"
)

// GeneratorConfig configures the sample feedback generator
type GeneratorConfig struct {
	Rows      int       `json:"rows"`
	Seed      int64     `json:"seed"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// DefaultGeneratorConfig returns sensible defaults for sample generation
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:      400,
		Seed:      42,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

// sampleProfile defines one bundled sample domain. Header names vary per
// profile on purpose so the alias mapping is exercised end to end.
type sampleProfile struct {
	headers  [4]string // created_at, product, rating, review_text columns
	products []string
	positive []string
	negative []string
}

var sampleProfiles = map[string]sampleProfile{
	"widgets": {
		headers:  [4]string{"Date", "Queue", "Satisfaction", "Feedback"},
		products: []string{"Widget Basic", "Widget Pro", "Widget Max"},
		positive: []string{"assembly was quick and painless", "works exactly as advertised", "great build quality"},
		negative: []string{"arrived broken and scratched", "setup is slow and confusing", "requesting a refund for missing parts"},
	},
	"mortgage": {
		headers:  [4]string{"submitted_at", "team", "score", "comment"},
		products: []string{"Origination", "Servicing", "Escrow"},
		positive: []string{"closing went smoothly", "clear communication throughout", "rate matched the estimate"},
		negative: []string{"application portal keeps crashing", "underwriting is painfully slow", "filed a complaint about surprise fees"},
	},
	"ecommerce": {
		headers:  [4]string{"timestamp", "category", "stars", "review_text"},
		products: []string{"Apparel", "Electronics", "Home"},
		positive: []string{"fast shipping and great packaging", "exactly what I ordered", "checkout was effortless"},
		negative: []string{"checkout is slow on mobile", "item arrived broken", "still waiting on my refund"},
	},
	"support": {
		headers:  [4]string{"created_at", "service", "rating", "message"},
		products: []string{"Billing", "Onboarding", "Technical"},
		positive: []string{"agent resolved it in one call", "helpful and friendly support", "issue fixed within minutes"},
		negative: []string{"left unhappy after three transfers", "chat bot is a bug farm", "cancel my subscription already"},
	},
}

// Generator produces sample feedback tables by domain name.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a generator with default configuration.
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(DefaultGeneratorConfig())
}

// NewGeneratorWithConfig creates a generator with custom configuration.
func NewGeneratorWithConfig(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

var _ ports.SampleSource = (*Generator)(nil)

// SampleNames lists the bundled sample domains in stable order.
func (g *Generator) SampleNames() []string {
	return []string{"widgets", "mortgage", "ecommerce", "support"}
}

// Sample generates the named sample dataset. Output is deterministic for
// a given name and configuration.
func (g *Generator) Sample(name string) (*feedback.RawTable, error) {
	profile, ok := sampleProfiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrSampleNotFound, name)
	}

	// Derive the seed from the sample name so domains differ but stay stable.
	seed := g.config.Seed
	for _, r := range name {
		seed = seed*31 + int64(r)
	}
	rng := rand.New(rand.NewSource(seed))

	table := &feedback.RawTable{
		Headers: profile.headers[:],
		Rows:    make([]feedback.RawRow, 0, g.config.Rows),
	}
	for i := 0; i < g.config.Rows; i++ {
		table.Rows = append(table.Rows, g.row(rng, profile))
	}
	return table, nil
}

func (g *Generator) row(rng *rand.Rand, profile sampleProfile) feedback.RawRow {
	rating := 1 + rng.Intn(5)
	var comment string
	if rating <= 3 {
		comment = profile.negative[rng.Intn(len(profile.negative))]
	} else {
		comment = profile.positive[rng.Intn(len(profile.positive))]
	}

	row := feedback.RawRow{
		profile.headers[0]: g.randomDate(rng).Format("2006-01-02"),
		profile.headers[1]: profile.products[rng.Intn(len(profile.products))],
		profile.headers[2]: fmt.Sprintf("%d", rating),
		profile.headers[3]: comment,
	}

	// Sprinkle in realistic dirt: a few missing ratings and unparseable dates.
	switch rng.Intn(20) {
	case 0:
		delete(row, profile.headers[2])
	case 1:
		row[profile.headers[0]] = "pending"
	}
	return row
}

func (g *Generator) randomDate(rng *rand.Rand) time.Time {
	span := int(g.config.EndDate.Sub(g.config.StartDate).Hours() / 24)
	if span <= 0 {
		return g.config.StartDate
	}
	return g.config.StartDate.AddDate(0, 0, rng.Intn(span+1))
}
