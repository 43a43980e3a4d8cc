package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		expected   string
	}{
		{"well above strong cut", 0.95, StrongValue},
		{"exactly strong cut", 0.75, StrongValue},
		{"exactly moderate cut", 0.5, ModerateValue},
		{"just above threshold", 0.31, WeakValue},
		{"zero", 0.0, WeakValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.confidence))
		})
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short name unchanged", "data.csv", 20, "data.csv"},
		{"long name truncated", "very-long-experiment-output-2026.csv", 20, "...t-output-2026.csv"},
		{"tiny width keeps original", "data.csv", 3, "data.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
