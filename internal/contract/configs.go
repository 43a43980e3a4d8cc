package contract

import (
	"fmt"
	"strings"

	"github.com/mfaulds/driftline/schema"
)

// Default values for configuration.
const (
	DefaultMinSeriesLength = 10
	DefaultThreshold       = 0.3
	DefaultNormConst       = 1.0
	DefaultWindow          = 24
	DefaultSeed            = 1337
	DefaultPrecision       = 2
	DefaultScorerPath      = "rnse-core"
	DefaultListenAddr      = ":8080"
)

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	OwnerToken string // Opaque, pre-validated owner identity for CLI operations

	ScorerKind schema.ScorerKind
	ScorerPath string
	Seed       int64
	Threshold  float64
	Window     int
	Smoothing  float64 // 0 means disabled

	NormConst       float64 // Divergence-to-confidence denominator; a tunable, never derived from data
	MinSeriesLength int

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	RecordsBackend   schema.DatabaseBackend
	RecordsDBConnect string // Please use env var as this is plaintext

	ListenAddr string
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Owner            string  `mapstructure:"owner"`
	Scorer           string  `mapstructure:"scorer"`
	ScorerPath       string  `mapstructure:"scorer-path"`
	Seed             int64   `mapstructure:"seed"`
	Threshold        float64 `mapstructure:"threshold"`
	Window           int     `mapstructure:"window"`
	Smoothing        float64 `mapstructure:"smoothing"`
	NormConst        float64 `mapstructure:"norm-const"`
	MinLength        int     `mapstructure:"min-length"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Precision        int     `mapstructure:"precision"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	RecordsBackend   string  `mapstructure:"records-backend"`
	RecordsDBConnect string  `mapstructure:"records-db-connect"`
	Listen           string  `mapstructure:"listen"`
}

// Clone returns a copy of the configuration so per-request overrides never
// mutate the base config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateScoringInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}

	cfg.OwnerToken = strings.TrimSpace(input.Owner)
	cfg.ListenAddr = input.Listen
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}

	return nil
}

// validateScoringInputs processes the scorer selection and its numeric knobs.
func validateScoringInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ScorerKind = schema.ScorerKind(strings.ToLower(input.Scorer))
	if _, ok := schema.ValidScorerKinds[cfg.ScorerKind]; !ok {
		return fmt.Errorf("invalid scorer '%s'. must be external, synthetic", input.Scorer)
	}

	cfg.ScorerPath = input.ScorerPath
	if cfg.ScorerPath == "" {
		cfg.ScorerPath = DefaultScorerPath
	}

	if input.Threshold < 0 || input.Threshold >= 1 {
		return fmt.Errorf("threshold must be in [0, 1) (received %g)", input.Threshold)
	}
	cfg.Threshold = input.Threshold

	if input.Window < 1 {
		return fmt.Errorf("window must be at least 1 (received %d)", input.Window)
	}
	cfg.Window = input.Window

	if input.Smoothing < 0 {
		return fmt.Errorf("smoothing must be non-negative (received %g)", input.Smoothing)
	}
	cfg.Smoothing = input.Smoothing

	if input.NormConst <= 0 {
		return fmt.Errorf("norm-const must be greater than 0 (received %g)", input.NormConst)
	}
	cfg.NormConst = input.NormConst

	if input.MinLength < 2 {
		return fmt.Errorf("min-length must be at least 2 (received %d)", input.MinLength)
	}
	cfg.MinSeriesLength = input.MinLength

	cfg.Seed = input.Seed

	return nil
}

// validateOutputInputs processes output format, precision and color settings.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Precision < 1 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 1 and 6 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// validateBackendConfig validates the record store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RecordsBackend = schema.DatabaseBackend(strings.ToLower(input.RecordsBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RecordsBackend]; !ok {
		return fmt.Errorf("invalid records backend '%s'. must be sqlite, mysql, postgresql, none", input.RecordsBackend)
	}
	cfg.RecordsDBConnect = input.RecordsDBConnect
	return ValidateDatabaseConnectionString(cfg.RecordsBackend, cfg.RecordsDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("records-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("records-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use the postgres:// URL form")
		}
	}
	return nil
}

// ScorerConfigFromConfig extracts the scorer call parameters from the
// validated runtime configuration.
func ScorerConfigFromConfig(cfg *Config) ScorerConfig {
	return ScorerConfig{
		Seed:      cfg.Seed,
		Threshold: cfg.Threshold,
		Window:    cfg.Window,
		Smoothing: cfg.Smoothing,
	}
}

// RequireOwner verifies that an owner identity is configured. Pipeline
// commands cannot run without one since every record is owner-partitioned.
func RequireOwner(cfg *Config) error {
	if cfg.OwnerToken == "" {
		return fmt.Errorf("owner identity is required: set --owner or DRIFTLINE_OWNER")
	}
	return nil
}
