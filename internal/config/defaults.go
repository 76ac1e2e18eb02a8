package config

import "time"

const (
	// DefaultSchemaFile is where the results JSON Schema is looked up when
	// no CQV_SCHEMA_URL override is set
	DefaultSchemaFile = "schema/cql-test-results.schema.json"
	// DefaultSessionDirName is the session state directory name under the
	// user cache dir
	DefaultSessionDirName = "cqv"
	// DefaultFetchTimeout bounds every single document fetch
	DefaultFetchTimeout = 30 * time.Second
	// DefaultWatchInterval is how often the persisted document is
	// re-checked for external updates
	DefaultWatchInterval = time.Second
	// DefaultChartDir is where chart PNGs are written
	DefaultChartDir = "charts"
)

// DefaultSkipDirs are directory names the index scanner never descends into
var DefaultSkipDirs = []string{"node_modules", "vendor", "charts"}
