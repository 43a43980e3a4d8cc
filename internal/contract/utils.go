package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Confidence label constants.
const (
	StrongValue   = "Strong"   // Strong anomaly signal
	ModerateValue = "Moderate" // Moderate anomaly signal
	WeakValue     = "Weak"     // Weak anomaly signal
)

// DateTimeFormat is the timestamp layout used in human-facing output.
const DateTimeFormat = "2006-01-02 15:04:05"

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgRed, color.Bold) // strongColor represents a clear anomaly.
	ModerateColor = color.New(color.FgYellow)          // moderateColor represents standard caution, not bold.
	WeakColor     = color.New(color.FgCyan)            // weakColor represents a just-over-threshold signal.
)

// GetPlainLabel returns a plain text label for a flag's confidence value.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(confidence float64) string {
	switch {
	case confidence >= 0.75:
		return StrongValue
	case confidence >= 0.5:
		return ModerateValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(confidence float64) string {
	text := GetPlainLabel(confidence)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Weak"
		return WeakColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
}

// GetRecordsDBFilePath returns the path to the SQLite DB file for record storage.
func GetRecordsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".driftline_records.db"
	}
	return filepath.Join(homeDir, ".driftline_records.db")
}

// TruncateName truncates a filename to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and at least one
// character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
