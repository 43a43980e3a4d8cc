package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(mode schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:         mode,
		Precision:      2,
		Width:          100,
		RecordsBackend: schema.SQLiteBackend,
	}
}

func testSummary() schema.RecordSummary {
	return schema.RecordSummary{
		ID:           7,
		Filename:     "metrics.csv",
		SampleCount:  100,
		AnomalyCount: 2,
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Indices:      []int{41, 42},
		Confidences:  []float64{0.55, 0.81},
	}
}

func TestWriteSummaryTable(t *testing.T) {
	cfg := testConfig(schema.TextOut)
	var buf bytes.Buffer

	err := writeSummaryTable(testSummary(), cfg, createFloatFormatter(cfg.Precision), 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "41")
	assert.Contains(t, out, "0.55")
	assert.Contains(t, out, "Strong") // 0.81 crosses the strong cutoff
	assert.Contains(t, out, "Flagged 2 of 100 samples in metrics.csv (record 7)")
	assert.Contains(t, out, "Records backend: sqlite")
}

func TestWriteSummaryTableNotPersisted(t *testing.T) {
	cfg := testConfig(schema.TextOut)
	summary := testSummary()
	summary.ID = 0

	var buf bytes.Buffer
	err := writeSummaryTable(summary, cfg, createFloatFormatter(cfg.Precision), time.Millisecond, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(not persisted)")
}

func TestWriteSummaryTableNoFlags(t *testing.T) {
	cfg := testConfig(schema.TextOut)
	summary := schema.RecordSummary{ID: 3, Filename: "calm.csv", SampleCount: 50}

	var buf bytes.Buffer
	err := writeSummaryTable(summary, cfg, createFloatFormatter(cfg.Precision), time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "Index")
	assert.Contains(t, out, "Flagged 0 of 50 samples")
}

func TestWriteSummaryCSVToFile(t *testing.T) {
	cfg := testConfig(schema.CSVOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "summary.csv")

	err := WriteSummaryResult(testSummary(), cfg, time.Millisecond)
	require.NoError(t, err)

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3) // header + 2 flags
	assert.Equal(t, "record_id,filename,index,confidence,label", lines[0])
	assert.Equal(t, "7,metrics.csv,41,0.55,Moderate", lines[1])
	assert.Equal(t, "7,metrics.csv,42,0.81,Strong", lines[2])
}

func TestWriteSummaryJSONToFile(t *testing.T) {
	cfg := testConfig(schema.JSONOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "summary.json")

	err := WriteSummaryResult(testSummary(), cfg, time.Millisecond)
	require.NoError(t, err)

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, float64(7), result["id"])
	assert.Equal(t, "metrics.csv", result["filename"])
}

func TestWriteHistoryTable(t *testing.T) {
	cfg := testConfig(schema.TextOut)
	summaries := []schema.RecordSummary{
		{ID: 2, Filename: "second.csv", SampleCount: 30, AnomalyCount: 1, CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{ID: 1, Filename: "first.csv", SampleCount: 20, AnomalyCount: 0, CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	err := writeHistoryTable(summaries, cfg, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "second.csv")
	assert.Contains(t, out, "first.csv")
	assert.Contains(t, out, "2026-03-02 09:00:00")
	assert.Contains(t, out, "Showing 2 records")
}

func TestWriteHistoryTableEmpty(t *testing.T) {
	cfg := testConfig(schema.TextOut)

	var buf bytes.Buffer
	err := writeHistoryTable(nil, cfg, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No records found.")
}

func TestWriteHistoryCSVToFile(t *testing.T) {
	cfg := testConfig(schema.CSVOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "history.csv")

	summaries := []schema.RecordSummary{
		{ID: 5, Filename: "a.csv", SampleCount: 10, AnomalyCount: 3, CreatedAt: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)},
	}
	err := WriteHistoryResults(summaries, cfg)
	require.NoError(t, err)

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "record_id,filename,samples,anomalies,created_at", lines[0])
	assert.Equal(t, "5,a.csv,10,3,2026-03-01 08:30:00", lines[1])
}

func TestWriteHistoryJSONToFile(t *testing.T) {
	cfg := testConfig(schema.JSONOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "history.json")

	summaries := []schema.RecordSummary{
		{ID: 9, Filename: "x.csv", SampleCount: 12, AnomalyCount: 0, CreatedAt: time.Now()},
	}
	err := WriteHistoryResults(summaries, cfg)
	require.NoError(t, err)

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var result []map[string]any
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result, 1)
	assert.Equal(t, float64(9), result[0]["id"])
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{"narrow terminal", 40, 15},
		{"standard terminal", 100, 50},
		{"wide terminal", 200, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, getMaxTableNameWidth(cfg))
		})
	}
}
