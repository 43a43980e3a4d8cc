package seriescsv

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seriesCSV builds an upload body with a header and n rows of value v.
func seriesCSV(n int, v float64) []byte {
	var b strings.Builder
	b.WriteString("timestamp,value\n")
	for i := range n {
		fmt.Fprintf(&b, "2026-01-01T00:%02d:00Z,%g\n", i, v)
	}
	return []byte(b.String())
}

func TestDecode(t *testing.T) {
	ts, err := Decode(seriesCSV(12, 10.5), 10)
	require.NoError(t, err)
	assert.Equal(t, 12, ts.Len())
	assert.Equal(t, 10.5, ts.Values[0])
	assert.Len(t, ts.Labels, 12)
	assert.Equal(t, "2026-01-01T00:00:00Z", ts.Labels[0])
}

func TestDecodeSkipsMalformedRows(t *testing.T) {
	raw := []byte("timestamp,value\n" +
		"t1,1.0\n" +
		"t2,not-a-number\n" + // skipped
		"t3,3.0\n" +
		"t4\n" + // too few columns, skipped
		"t5,5.0\n")

	ts, err := Decode(raw, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 3.0, 5.0}, ts.Values)
	assert.Equal(t, []string{"t1", "t3", "t5"}, ts.Labels)
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		sentinel error
	}{
		{"empty input", []byte(""), contract.ErrMalformedInput},
		{"whitespace only", []byte("   \n \n"), contract.ErrMalformedInput},
		{"single column header", []byte("value\n1\n2\n"), contract.ErrMalformedInput},
		{"nine samples below floor of ten", seriesCSV(9, 1.0), contract.ErrInsufficientData},
		{"all rows non-numeric", []byte("t,v\na,x\nb,y\nc,z\n"), contract.ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw, 10)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "want %v, got %v", tt.sentinel, err)
		})
	}
}

func TestDecodeExactlyAtFloor(t *testing.T) {
	ts, err := Decode(seriesCSV(10, 2.0), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Len())
}

func TestEncodeDeterministic(t *testing.T) {
	rec := schema.AnalysisRecord{
		Series: schema.TimeSeries{Values: []float64{1.25, 2.5, 3.75}},
		Flags:  []schema.AnomalyFlag{{Index: 2, Confidence: 0.61803398875}},
	}

	first, err := Encode(rec)
	require.NoError(t, err)
	second, err := Encode(rec)
	require.NoError(t, err)
	assert.Equal(t, first, second, "Encode must be byte-stable")

	lines := strings.Split(strings.TrimSpace(string(first)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "index,value,is_anomaly,confidence", lines[0])
	assert.Equal(t, "1,1.25,false,0", lines[1])
	assert.Equal(t, "2,2.5,true,0.61803398875", lines[2])
	assert.Equal(t, "3,3.75,false,0", lines[3])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// A record with no anomalies round-trips its numeric series exactly:
	// the download CSV's second column is the value column.
	values := []float64{10.0, 10.125, 9.875, 10.0, 15.5, 10.0, 9.99999, 10.0001, 10.0, 10.0, 1e-3, 123456.789}
	rec := schema.AnalysisRecord{Series: schema.TimeSeries{Values: values}}

	encoded, err := Encode(rec)
	require.NoError(t, err)

	decoded, err := Decode(encoded, 10)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Values)
}
