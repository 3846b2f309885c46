// Package app wires the schema mapper, normalizer and query engine into
// the dataset/session lifecycle consumed by the HTTP layer.
package app

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
	"feedbacklens/internal/errors"
	"feedbacklens/internal/insight"
	"feedbacklens/internal/normalize"
	"feedbacklens/internal/report"
	"feedbacklens/internal/schema"
	"feedbacklens/ports"

	"golang.org/x/sync/errgroup"
)

// DatasetSummary is returned on load so the caller can populate filter
// widgets and surface schema warnings.
type DatasetSummary struct {
	ID          core.DatasetID        `json:"id"`
	Name        string                `json:"name"`
	RecordCount int                   `json:"record_count"`
	Products    []string              `json:"products"`
	DateMin     *core.Date            `json:"date_min"`
	DateMax     *core.Date            `json:"date_max"`
	Mapping     feedback.FieldMapping `json:"mapping"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// session holds one loaded dataset. The canonical table is built once and
// never mutated; queries only ever read it.
type session struct {
	id       core.DatasetID
	name     string
	table    *feedback.CanonicalTable
	loadedAt time.Time
}

// InsightService owns dataset sessions and answers the analytical queries
// against them.
type InsightService struct {
	mapper     *schema.Mapper
	normalizer *normalize.Normalizer
	engine     ports.QueryEngine
	reader     ports.TableReader
	samples    ports.SampleSource

	mu       sync.RWMutex
	sessions map[core.DatasetID]*session
}

// NewInsightService creates the service with its collaborators.
func NewInsightService(engine ports.QueryEngine, reader ports.TableReader, samples ports.SampleSource, cfg feedback.InsightConfig) *InsightService {
	return &InsightService{
		mapper:     schema.NewMapper(cfg.Aliases),
		normalizer: normalize.NewNormalizer(cfg),
		engine:     engine,
		reader:     reader,
		samples:    samples,
		sessions:   make(map[core.DatasetID]*session),
	}
}

// LoadUpload parses an uploaded file and builds its canonical table.
func (s *InsightService) LoadUpload(ctx context.Context, src io.Reader, filename string) (*DatasetSummary, error) {
	raw, err := s.reader.ReadTable(src, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filename)
	}
	return s.load(filename, raw)
}

// LoadSample builds the canonical table for a bundled sample dataset.
func (s *InsightService) LoadSample(ctx context.Context, name string) (*DatasetSummary, error) {
	raw, err := s.samples.Sample(name)
	if err != nil {
		return nil, err
	}
	return s.load(name, raw)
}

// SampleNames lists the bundled sample datasets.
func (s *InsightService) SampleNames() []string {
	return s.samples.SampleNames()
}

// load runs the mapping + normalization pass once and registers the
// session. A dataset with zero rows is rejected up front so queries never
// compute misleading empty aggregates against it.
func (s *InsightService) load(name string, raw *feedback.RawTable) (*DatasetSummary, error) {
	if len(raw.Rows) == 0 {
		return nil, core.ErrEmptyDataset
	}

	mapping, schemaWarnings := s.mapper.Resolve(raw.Headers)
	table := s.normalizer.Normalize(raw, mapping, schemaWarnings)

	sess := &session{
		id:       core.DatasetID(core.NewID()),
		name:     name,
		table:    table,
		loadedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Printf("[InsightService] Loaded dataset %s (%s): %d records, %d warnings",
		sess.id, name, table.Len(), len(table.Warnings))

	return s.summarize(sess), nil
}

func (s *InsightService) summarize(sess *session) *DatasetSummary {
	min, max := sess.table.DateRange()
	summary := &DatasetSummary{
		ID:          sess.id,
		Name:        sess.name,
		RecordCount: sess.table.Len(),
		Products:    sess.table.Products(),
		DateMin:     min,
		DateMax:     max,
		Mapping:     sess.table.Mapping,
	}
	for _, w := range sess.table.Warnings {
		summary.Warnings = append(summary.Warnings, w.String())
	}
	return summary
}

// Summary re-issues the load summary for an existing session.
func (s *InsightService) Summary(id core.DatasetID) (*DatasetSummary, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.summarize(sess), nil
}

// Drop removes a session; subsequent queries against it return not-found.
func (s *InsightService) Drop(id core.DatasetID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *InsightService) session(id core.DatasetID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	return sess, nil
}

// KPI answers the headline metrics query.
func (s *InsightService) KPI(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec) (feedback.KPIResult, error) {
	sess, err := s.session(id)
	if err != nil {
		return feedback.KPIResult{}, err
	}
	return s.engine.KPI(ctx, sess.table, filter)
}

// Trend answers the monthly trend query plus its direction summary.
func (s *InsightService) Trend(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec) ([]feedback.TrendRow, feedback.TrendSummary, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, feedback.TrendSummary{}, err
	}
	rows, err := s.engine.Trend(ctx, sess.table, filter)
	if err != nil {
		return nil, feedback.TrendSummary{}, err
	}
	return rows, insight.SummarizeTrend(rows), nil
}

// Segment answers the per-product breakdown query.
func (s *InsightService) Segment(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec) ([]feedback.SegmentRow, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.engine.Segment(ctx, sess.table, filter)
}

// NegativeInsights answers the negative records + keyword hotspot query.
func (s *InsightService) NegativeInsights(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec) (feedback.NegativeInsights, error) {
	sess, err := s.session(id)
	if err != nil {
		return feedback.NegativeInsights{}, err
	}
	return s.engine.NegativeInsights(ctx, sess.table, filter)
}

// Overview computes all four queries under one filter. The canonical
// table is read-only, so the queries fan out concurrently.
func (s *InsightService) Overview(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec) (feedback.Overview, error) {
	sess, err := s.session(id)
	if err != nil {
		return feedback.Overview{}, err
	}

	var ov feedback.Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ov.KPI, err = s.engine.KPI(gctx, sess.table, filter)
		return err
	})
	g.Go(func() error {
		rows, err := s.engine.Trend(gctx, sess.table, filter)
		if err != nil {
			return err
		}
		ov.Trend = rows
		ov.TrendDir = insight.SummarizeTrend(rows)
		return nil
	})
	g.Go(func() error {
		var err error
		ov.Segments, err = s.engine.Segment(gctx, sess.table, filter)
		return err
	})
	g.Go(func() error {
		var err error
		ov.Negative, err = s.engine.NegativeInsights(gctx, sess.table, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return feedback.Overview{}, err
	}
	return ov, nil
}

// Report renders the overview as a markdown document.
func (s *InsightService) Report(ctx context.Context, id core.DatasetID, filter feedback.FilterSpec) (string, error) {
	sess, err := s.session(id)
	if err != nil {
		return "", err
	}
	ov, err := s.Overview(ctx, id, filter)
	if err != nil {
		return "", err
	}
	return report.BuildMarkdown(sess.name, filter, ov), nil
}
