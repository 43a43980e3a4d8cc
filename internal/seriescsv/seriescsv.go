// Package seriescsv decodes uploaded time series from CSV and encodes stored
// records back to CSV for download. Both directions are pure transforms; the
// encode side is byte-stable so re-encoding the same record yields identical
// text.
package seriescsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
)

// DownloadHeader is the fixed header row of the download format. This is the
// only on-disk/wire format the pipeline fixes exactly.
var DownloadHeader = []string{"index", "value", "is_anomaly", "confidence"}

// valueColumn is the fixed position of the numeric sample in uploaded CSVs.
const valueColumn = 1

// Decode parses raw CSV text into a TimeSeries. The input must have a header
// row and at least two columns; the sample value is taken from the second
// column and the first column is carried along as an informational label.
// Rows whose value column does not parse as a number are skipped rather than
// aborting the decode. If fewer than minLength samples survive, Decode fails
// with ErrInsufficientData.
func Decode(raw []byte, minLength int) (schema.TimeSeries, error) {
	var ts schema.TimeSeries

	if len(bytes.TrimSpace(raw)) == 0 {
		return ts, fmt.Errorf("%w: empty upload", contract.ErrMalformedInput)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := reader.Read()
	if err != nil {
		return ts, fmt.Errorf("%w: cannot read header row: %v", contract.ErrMalformedInput, err)
	}
	if len(header) < 2 {
		return ts, fmt.Errorf("%w: expected at least two columns, got %d", contract.ErrMalformedInput, len(header))
	}

	hasLabels := false
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row (e.g. bare quote) is skipped like a
			// non-numeric one; the minimum-length floor catches degenerate files.
			continue
		}
		if len(row) <= valueColumn {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[valueColumn]), 64)
		if err != nil {
			continue
		}
		ts.Values = append(ts.Values, v)
		label := strings.TrimSpace(row[0])
		if label != "" {
			hasLabels = true
		}
		ts.Labels = append(ts.Labels, label)
	}

	if len(ts.Values) < minLength {
		return schema.TimeSeries{}, fmt.Errorf("%w: %d usable samples, need at least %d",
			contract.ErrInsufficientData, len(ts.Values), minLength)
	}
	if !hasLabels {
		ts.Labels = nil
	}
	return ts, nil
}

// Encode serializes a stored record into the download CSV format: one row per
// sample with its 1-based index, the verbatim value, whether it was flagged,
// and the flag confidence (0 when not flagged). The output is a deterministic
// function of the record.
func Encode(rec schema.AnalysisRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(DownloadHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Flags are stored ascending by index, so a single cursor suffices.
	flagPos := 0
	for i, v := range rec.Series.Values {
		idx := i + 1
		isAnomaly := false
		confidence := 0.0
		if flagPos < len(rec.Flags) && rec.Flags[flagPos].Index == idx {
			isAnomaly = true
			confidence = rec.Flags[flagPos].Confidence
			flagPos++
		}
		row := []string{
			strconv.Itoa(idx),
			strconv.FormatFloat(v, 'g', -1, 64),
			strconv.FormatBool(isAnomaly),
			strconv.FormatFloat(confidence, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row %d: %w", idx, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return buf.Bytes(), nil
}
