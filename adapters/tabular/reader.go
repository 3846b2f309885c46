// Package tabular parses uploaded CSV and XLSX files into the raw table
// consumed by the core. The core never reads files directly.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
	"feedbacklens/ports"

	"github.com/xuri/excelize/v2"
)

// Reader parses CSV and XLSX streams into raw tables.
type Reader struct{}

// NewReader creates a tabular reader.
func NewReader() *Reader {
	return &Reader{}
}

var _ ports.TableReader = (*Reader)(nil)

// ReadTable parses the stream based on the filename extension. The first
// row is treated as the header row; cell values are trimmed. A dataset
// with zero data rows parses successfully; rejecting it is the caller's
// decision.
func (r *Reader) ReadTable(src io.Reader, filename string) (*feedback.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return r.readCSV(src)
	case ".xlsx", ".xls":
		return r.readExcel(src)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, ext)
	}
}

func (r *Reader) readCSV(src io.Reader) (*feedback.RawTable, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	readStart := time.Now()
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	log.Printf("[TabularReader] CSV read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(records))

	return buildTable(records)
}

func (r *Reader) readExcel(src io.Reader) (*feedback.RawTable, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel stream: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrNoColumns
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	log.Printf("[TabularReader] Excel sheet %s read in %.2fms (%d rows)", sheets[0], float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return buildTable(rows)
}

// buildTable converts raw string rows into a RawTable, using the first row
// as headers. Cells beyond the header width are ignored; missing cells
// stay absent from the row map.
func buildTable(rows [][]string) (*feedback.RawTable, error) {
	if len(rows) == 0 {
		return nil, core.ErrNoColumns
	}

	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	if len(headers) == 0 {
		return nil, core.ErrNoColumns
	}

	table := &feedback.RawTable{Headers: headers, Rows: make([]feedback.RawRow, 0, len(rows)-1)}
	for _, record := range rows[1:] {
		row := make(feedback.RawRow, len(headers))
		for j, value := range record {
			if j >= len(headers) {
				break
			}
			if v := strings.TrimSpace(value); v != "" {
				row[headers[j]] = v
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
