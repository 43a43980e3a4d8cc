package cmd

import (
	"fmt"

	"github.com/mfaulds/driftline/core"
	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/internal/httpapi"
	"github.com/mfaulds/driftline/internal/recordstore"
	"github.com/mfaulds/driftline/schema"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP record API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the record API over HTTP.",
	Long: `Serve the analysis pipeline and record store over HTTP.

Every request must carry an X-Owner-Token header identifying the caller.
Endpoints:
  POST /api/records                       upload a CSV file for analysis
  GET  /api/records                       list the caller's records
  GET  /api/records/{id}/download         download a record as annotated CSV
  GET  /health                            liveness check

Examples:
  # Serve on the default address
  driftline serve

  # Serve on a custom port with a MySQL record store
  driftline serve --listen :9090 --records-backend mysql \
    --records-db-connect "user:pass@tcp(localhost:3306)/driftline"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.RecordsBackend == schema.NoneBackend {
			contract.LogFatal("Cannot serve record API", fmt.Errorf("the record API requires a persistent backend (got: none)"))
		}
		srv := httpapi.NewServer(cfg, core.NewScorerFromConfig(cfg), recordstore.Manager.GetRecordStore())
		if err := srv.ListenAndServe(); err != nil {
			contract.LogFatal("Cannot serve record API", err)
		}
	},
}
