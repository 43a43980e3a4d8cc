package cmd

import (
	"github.com/mfaulds/driftline/core"
	"github.com/mfaulds/driftline/internal/mcp"
	"github.com/mfaulds/driftline/internal/recordstore"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Driftline MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze series and query records via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdio clean for the protocol, so no header logs here.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, core.NewScorerFromConfig(cfg), recordstore.Manager.GetRecordStore())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
