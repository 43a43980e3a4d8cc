package outwriter

import (
	"os"

	"github.com/mfaulds/driftline/internal/contract"
	"golang.org/x/term"
)

// getMaxTableNameWidth calculates the maximum width for filenames in table
// output based on terminal width.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the ID, sample, anomaly and created columns with
	// table borders, separators and padding.
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable filename width
		return 15
	}
	if available > 60 {
		// Maximum filename width to prevent overly wide tables
		return 60
	}
	return available
}
