package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for record storage.
	DatabaseBackend string

	// ScorerKind selects which scorer variant runs the divergence pass.
	ScorerKind string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All record store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All scorer variants supported. ExternalKind is the production scorer
// supplied as an unmodified black-box binary; SyntheticKind produces
// deterministic divergence for tests and local development.
const (
	ExternalKind  ScorerKind = "external" // default
	SyntheticKind ScorerKind = "synthetic"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid record store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidScorerKinds lists all valid scorer variants.
var ValidScorerKinds = map[ScorerKind]struct{}{
	ExternalKind:  {},
	SyntheticKind: {},
}
