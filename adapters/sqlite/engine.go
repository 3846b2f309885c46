// Package sqlite implements the query engine on an in-memory SQLite
// database: the canonical table is loaded once per dataset and the four
// views are answered with parameterized aggregate SQL. Results are
// identical to the in-memory engine; the backend is selected by
// configuration.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
	"feedbacklens/internal"
	"feedbacklens/internal/insight"
	"feedbacklens/ports"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS feedback (
	idx         INTEGER PRIMARY KEY,
	product     TEXT NOT NULL,
	rating      REAL,
	created_at  TEXT,
	month       TEXT,
	is_negative INTEGER NOT NULL,
	review_text TEXT NOT NULL
)`

// Engine answers the four queries with SQL over an in-memory database.
// The table is reloaded when a different canonical table is queried; the
// canonical table itself stays the source of truth for record payloads.
//
// One engine serves every loaded dataset, so each query holds mu from the
// staleness check through its SELECT: releasing it in between would let a
// concurrent query for another table swap the rows out underneath.
type Engine struct {
	db        *sqlx.DB
	extractor *insight.HotspotExtractor

	mu     sync.Mutex
	loaded *feedback.CanonicalTable
}

var _ ports.QueryEngine = (*Engine)(nil)

// NewEngine opens an in-memory database. A single connection is enforced
// because each SQLite :memory: connection is its own database.
func NewEngine(cfg feedback.InsightConfig) (*Engine, error) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create feedback table: %w", err)
	}

	return &Engine{db: db, extractor: insight.NewHotspotExtractor(cfg)}, nil
}

// Close releases the database.
func (e *Engine) Close() error {
	return e.db.Close()
}

// ensureLoaded reloads the feedback table when the canonical table
// changed. Datasets are rebuilt wholesale on change, so pointer identity
// is a sufficient staleness check. Callers must hold e.mu.
func (e *Engine) ensureLoaded(ctx context.Context, table *feedback.CanonicalTable) error {
	if e.loaded == table {
		return nil
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM feedback`); err != nil {
		return fmt.Errorf("failed to clear feedback table: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO feedback (idx, product, rating, created_at, month, is_negative, review_text) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range table.Records {
		var createdAt, month *string
		if rec.CreatedAt != nil {
			s := rec.CreatedAt.String()
			createdAt = &s
			m := rec.Month
			month = &m
		}
		negative := 0
		if rec.IsNegative {
			negative = 1
		}
		if _, err := stmt.ExecContext(ctx, i, rec.Product, rec.Rating, createdAt, month, negative, rec.ReviewText); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	e.loaded = table
	internal.DefaultLogger.Debug("sqlite engine loaded %d records", len(table.Records))
	return nil
}

// whereClause builds the shared filter predicate. A date bound compares
// against the date-only column, which is NULL for undated rows, so bounds
// exclude them without an explicit null check.
func whereClause(filter feedback.FilterSpec) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if len(filter.Products) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Products)), ",")
		clauses = append(clauses, fmt.Sprintf("product IN (%s)", placeholders))
		for _, p := range filter.Products {
			args = append(args, p)
		}
	}
	if filter.DateFrom != nil {
		clauses = append(clauses, "date(created_at) >= date(?)")
		args = append(args, filter.DateFrom.String())
	}
	if filter.DateTo != nil {
		clauses = append(clauses, "date(created_at) <= date(?)")
		args = append(args, filter.DateTo.String())
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// prepare validates the query inputs and loads the table. Callers must
// hold e.mu and keep holding it until their statement has run.
func (e *Engine) prepare(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) error {
	if table.IsEmpty() {
		return core.ErrEmptyDataset
	}
	if err := filter.Validate(); err != nil {
		return err
	}
	return e.ensureLoaded(ctx, table)
}

// KPI runs the count/average aggregate.
func (e *Engine) KPI(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) (feedback.KPIResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.prepare(ctx, table, filter); err != nil {
		return feedback.KPIResult{}, err
	}

	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) AS total, ROUND(AVG(rating), 2) AS avg_rating FROM feedback %s`, where)

	var row struct {
		Total     int             `db:"total"`
		AvgRating sql.NullFloat64 `db:"avg_rating"`
	}
	if err := e.db.GetContext(ctx, &row, query, args...); err != nil {
		return feedback.KPIResult{}, fmt.Errorf("kpi query failed: %w", err)
	}

	result := feedback.KPIResult{TotalTickets: row.Total}
	if row.AvgRating.Valid {
		result.AvgRating = &row.AvgRating.Float64
	}
	return result, nil
}

// Trend groups by month, ascending.
func (e *Engine) Trend(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) ([]feedback.TrendRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.prepare(ctx, table, filter); err != nil {
		return nil, err
	}

	where, args := whereClause(filter)
	if where == "" {
		where = "WHERE month IS NOT NULL"
	} else {
		where += " AND month IS NOT NULL"
	}
	query := fmt.Sprintf(`SELECT month, COUNT(*) AS volume, ROUND(AVG(rating), 2) AS avg_rating FROM feedback %s GROUP BY month ORDER BY month`, where)

	rows, err := e.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("trend query failed: %w", err)
	}
	defer rows.Close()

	var out []feedback.TrendRow
	for rows.Next() {
		var row struct {
			Month     string          `db:"month"`
			Volume    int             `db:"volume"`
			AvgRating sql.NullFloat64 `db:"avg_rating"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("trend scan failed: %w", err)
		}
		tr := feedback.TrendRow{Month: row.Month, Volume: row.Volume}
		if row.AvgRating.Valid {
			tr.AvgRating = &row.AvgRating.Float64
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// Segment groups by product, tickets descending then product ascending.
func (e *Engine) Segment(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) ([]feedback.SegmentRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.prepare(ctx, table, filter); err != nil {
		return nil, err
	}

	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT product, COUNT(*) AS tickets, ROUND(AVG(rating), 2) AS avg_rating FROM feedback %s GROUP BY product ORDER BY tickets DESC, product ASC`, where)

	rows, err := e.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("segment query failed: %w", err)
	}
	defer rows.Close()

	var out []feedback.SegmentRow
	for rows.Next() {
		var row struct {
			Product   string          `db:"product"`
			Tickets   int             `db:"tickets"`
			AvgRating sql.NullFloat64 `db:"avg_rating"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("segment scan failed: %w", err)
		}
		sr := feedback.SegmentRow{Product: row.Product, Tickets: row.Tickets}
		if row.AvgRating.Valid {
			sr.AvgRating = &row.AvgRating.Float64
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// NegativeInsights selects the negative row indexes and hands the matching
// canonical records to the keyword extractor.
func (e *Engine) NegativeInsights(ctx context.Context, table *feedback.CanonicalTable, filter feedback.FilterSpec) (feedback.NegativeInsights, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.prepare(ctx, table, filter); err != nil {
		return feedback.NegativeInsights{}, err
	}

	where, args := whereClause(filter)
	if where == "" {
		where = "WHERE is_negative = 1"
	} else {
		where += " AND is_negative = 1"
	}
	query := fmt.Sprintf(`SELECT idx FROM feedback %s ORDER BY idx`, where)

	var indexes []int
	if err := e.db.SelectContext(ctx, &indexes, query, args...); err != nil {
		return feedback.NegativeInsights{}, fmt.Errorf("negative insights query failed: %w", err)
	}

	var negatives []feedback.CanonicalRecord
	for _, idx := range indexes {
		negatives = append(negatives, table.Records[idx])
	}

	return feedback.NegativeInsights{
		Records:  negatives,
		Keywords: e.extractor.Extract(negatives),
	}, nil
}
