package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Validation settings
	SchemaRef  string // path or URL of the results JSON Schema
	NoValidate bool

	// Session settings
	SessionDir    string
	WatchInterval time.Duration

	// Fetch settings
	FetchTimeout time.Duration

	// Output settings
	ChartDir string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Status      string
	Search      string
	GroupBy     string
	SortBy      string
	SortOrder   string
	Consistency string
	Plain       bool
	NoValidate  bool
	SchemaRef   string
	CSVPath     string
	JSONPath    string
	IndexRef    string
	Index       bool
	ChartDir    string
	Pattern     string
	OutPath     string
}

// New creates a new Config with defaults, then applies any .env overrides
// (CQV_SCHEMA_URL, CQV_SESSION_DIR, CQV_TIMEOUT seconds). A missing .env
// file is fine.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		SchemaRef:     DefaultSchemaFile,
		SessionDir:    defaultSessionDir(),
		WatchInterval: DefaultWatchInterval,
		FetchTimeout:  DefaultFetchTimeout,
		ChartDir:      DefaultChartDir,
	}

	if v := os.Getenv("CQV_SCHEMA_URL"); v != "" {
		cfg.SchemaRef = v
	}
	if v := os.Getenv("CQV_SESSION_DIR"); v != "" {
		cfg.SessionDir = v
	}
	if v := os.Getenv("CQV_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.FetchTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.SchemaRef != "" {
		cfg.SchemaRef = flags.SchemaRef
	}
	if flags.NoValidate {
		cfg.NoValidate = true
	}
	if flags.ChartDir != "" {
		cfg.ChartDir = flags.ChartDir
	}

	return cfg
}

// defaultSessionDir puts session state under the user cache dir, falling
// back to the system temp dir when no cache dir is known.
func defaultSessionDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, DefaultSessionDirName)
}
