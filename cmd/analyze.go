package cmd

import (
	"github.com/mfaulds/driftline/core"
	"github.com/mfaulds/driftline/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the analysis pipeline on one CSV file.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <csv-file>",
	Short: "Score a CSV time series and flag anomalous samples.",
	Long: `Decode a CSV time series, score it with the configured divergence scorer,
extract anomaly flags and persist the result as an owner-scoped record.

The upload format is a header row followed by one sample per row; the sample
value is read from the second column and the first column is kept as an
informational label. Rows that do not parse as numbers are skipped.

A sample is flagged when its normalized confidence strictly exceeds the
threshold. Identical input and configuration always produce identical flags.

Examples:
  # Analyze with the external scorer and defaults
  driftline analyze metrics.csv --owner team-a

  # Use the deterministic synthetic scorer with a stricter threshold
  driftline analyze metrics.csv --owner team-a --scorer synthetic --threshold 0.5

  # Analyze without persisting anything
  driftline analyze metrics.csv --owner team-a --records-backend none

  # Emit the summary as JSON for scripting
  driftline analyze metrics.csv --owner team-a --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
