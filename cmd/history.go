package cmd

import (
	"github.com/mfaulds/driftline/core"
	"github.com/mfaulds/driftline/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd lists the caller's stored records.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analysis records for the current owner.",
	Long: `List analysis records owned by the current owner, most recent first.

Only records created under the same owner token are visible; other owners'
records are never listed.

Examples:
  # Show recent records as a table
  driftline history --owner team-a

  # Emit the history as JSON
  driftline history --owner team-a --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list records", err)
		}
	},
}
