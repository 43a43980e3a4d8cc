package cmd

import (
	"fmt"
	"strconv"

	"github.com/mfaulds/driftline/core"
	"github.com/mfaulds/driftline/internal/contract"
	"github.com/spf13/cobra"
)

// downloadCmd re-encodes one stored record as CSV.
var downloadCmd = &cobra.Command{
	Use:   "download <record-id>",
	Short: "Download a stored record as annotated CSV.",
	Long: `Re-encode a stored record as CSV with one row per sample, annotated with
the anomaly flag and confidence for each sample.

Downloading the same record twice yields byte-identical output. Records owned
by a different owner are reported as not found.

Examples:
  # Print record 7 to stdout
  driftline download 7 --owner team-a

  # Write the annotated CSV to a file
  driftline download 7 --owner team-a --output-file record7.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		recordID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || recordID <= 0 {
			contract.LogFatal("Cannot download record", fmt.Errorf("record ID must be a positive integer, got %q", args[0]))
		}
		if err := core.ExecuteDownload(rootCtx, cfg, recordID); err != nil {
			contract.LogFatal("Cannot download record", err)
		}
	},
}
