// Package cmd defines the command-line interface for driftline.
package cmd

import (
	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the records subcommands to the parent records command
	recordsCmd.AddCommand(recordsStatusCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsClearCmd)
	recordsCmd.AddCommand(recordsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("owner", "o", "", "Opaque owner token that scopes every record operation")
	rootCmd.PersistentFlags().String("scorer", string(schema.ExternalKind), "Scorer variant: external or synthetic")
	rootCmd.PersistentFlags().String("scorer-path", contract.DefaultScorerPath, "Path or name of the external scorer binary")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Seed forwarded to the scorer for reproducible runs")
	rootCmd.PersistentFlags().Float64P("threshold", "t", contract.DefaultThreshold, "Confidence threshold in [0,1); samples scoring strictly above it are flagged")
	rootCmd.PersistentFlags().Int("window", contract.DefaultWindow, "Scoring window size forwarded to the scorer")
	rootCmd.PersistentFlags().Float64("smoothing", 0, "Optional smoothing factor forwarded to the scorer (0 = disabled)")
	rootCmd.PersistentFlags().Float64("norm-const", contract.DefaultNormConst, "Divergence-to-confidence normalization constant")
	rootCmd.PersistentFlags().Int("min-length", contract.DefaultMinSeriesLength, "Minimum number of usable samples per upload")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("records-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("records-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("listen", contract.DefaultListenAddr, "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of recordsMigrateCmd to Viper
	recordsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(recordsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding records migrate flags", err)
	}
}
