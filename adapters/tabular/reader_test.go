package tabular

import (
	"bytes"
	"strings"
	"testing"

	"feedbacklens/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	csvData := "Date,Queue,Satisfaction,Feedback\n2025-01-15,Widget,2,slow checkout\n2025-01-20,Widget,5,great\n"

	table, err := NewReader().ReadTable(strings.NewReader(csvData), "feedback.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Queue", "Satisfaction", "Feedback"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "slow checkout", table.Rows[0]["Feedback"])
	assert.Equal(t, "5", table.Rows[1]["Satisfaction"])
}

func TestReadCSVRaggedRowsTolerated(t *testing.T) {
	csvData := "date,rating,comment\n2025-01-15,4\n2025-01-16,5,fine,extra\n"

	table, err := NewReader().ReadTable(strings.NewReader(csvData), "ragged.csv")
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	_, hasComment := table.Rows[0]["comment"]
	assert.False(t, hasComment, "missing trailing cell stays absent")
	assert.Equal(t, "fine", table.Rows[1]["comment"])
}

func TestReadCSVHeaderOnly(t *testing.T) {
	table, err := NewReader().ReadTable(strings.NewReader("date,rating\n"), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestReadEmptyStream(t *testing.T) {
	_, err := NewReader().ReadTable(strings.NewReader(""), "empty.csv")
	assert.ErrorIs(t, err, core.ErrNoColumns)
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := NewReader().ReadTable(strings.NewReader("{}"), "data.json")
	assert.ErrorIs(t, err, core.ErrUnsupportedFile)
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"date", "product", "rating", "comment"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2025-01-15", "Widget", 2, "slow checkout"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := NewReader().ReadTable(&buf, "feedback.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "product", "rating", "comment"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Widget", table.Rows[0]["product"])
	assert.Equal(t, "2", table.Rows[0]["rating"])
}
