package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cqv/internal/cli"
	"cqv/internal/config"
	"cqv/internal/loader"
	"cqv/internal/session"
	"cqv/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	View      *ViewCommand
	Dashboard *DashboardCommand
	Compare   *CompareCommand
	Validate  *ValidateCommand
	Chart     *ChartCommand
	Index     *IndexCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	log := newLogger()

	// Initialize dependencies
	docLoader := loader.New(cfg.FetchTimeout, log)
	store := session.New(cfg.SessionDir)
	formatter := ui.NewFormatter(os.Stdout)

	return &Commands{
		View:      NewViewCommand(cfg, docLoader, store, formatter, log),
		Dashboard: NewDashboardCommand(cfg, docLoader, store, log),
		Compare:   NewCompareCommand(cfg, docLoader, formatter, log),
		Validate:  NewValidateCommand(cfg, docLoader, formatter),
		Chart:     NewChartCommand(cfg, docLoader, formatter, log),
		Index:     NewIndexCommand(cfg, log),
	}
}

// newLogger builds the structured logger for warnings (invalid parameters,
// dropped fetches, rejected drag payloads). Human-facing output goes
// through the ui package instead.
func newLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.WarnLevel,
	)
	return zap.New(core)
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with flags after parsing
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		if flags.SchemaRef != "" {
			cfg.SchemaRef = flags.SchemaRef
		}
		if flags.NoValidate {
			cfg.NoValidate = true
		}
		if flags.ChartDir != "" {
			cfg.ChartDir = flags.ChartDir
		}
		return nil
	}

	// View command
	viewCmd := &cobra.Command{
		Use:     "view <file|url>",
		Short:   "View one result document",
		Long:    "Load a CQL test results document from a file or URL and browse it in an interactive filterable table",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.View.Execute,
		PreRunE: applyFlags,
	}
	viewCmd.Flags().StringVar(&flags.Status, "status", "", "Filter by status (pass, fail, skip, error, all)")
	viewCmd.Flags().StringVar(&flags.Search, "search", "", "Free-text search over test name, group, tests name and expression")
	viewCmd.Flags().StringVar(&flags.GroupBy, "group-by", "", "Group results (none, group, status, testsName)")
	viewCmd.Flags().StringVar(&flags.SortBy, "sort-by", "", "Sort key (name, group, status, expression, testsName)")
	viewCmd.Flags().StringVar(&flags.SortOrder, "sort-order", "", "Sort order (asc, desc)")
	viewCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print tables instead of opening the interactive viewer")
	viewCmd.Flags().BoolVar(&flags.NoValidate, "no-validate", false, "Skip schema validation")
	viewCmd.Flags().StringVar(&flags.SchemaRef, "schema", "", "Path or URL of the results JSON Schema")
	rootCmd.AddCommand(viewCmd)

	// Dashboard command
	dashboardCmd := &cobra.Command{
		Use:     "dashboard <index|file...>",
		Short:   "Open the multi-file dashboard",
		Long:    "Fetch every file from an index manifest (or the listed files) concurrently and browse them in a tabbed dashboard with a comparison view",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Dashboard.Execute,
		PreRunE: applyFlags,
	}
	dashboardCmd.Flags().BoolVarP(&flags.Index, "index", "i", false, "Treat the argument as an index manifest")
	rootCmd.AddCommand(dashboardCmd)

	// Compare command
	compareCmd := &cobra.Command{
		Use:     "compare <file...>",
		Short:   "Compare results across files",
		Long:    "Join every test across the given result documents and classify per-test consistency; export the matrix as CSV or JSON",
		RunE:    c.Compare.Execute,
		PreRunE: applyFlags,
	}
	compareCmd.Flags().StringVarP(&flags.IndexRef, "index", "i", "", "Load the compared files from an index manifest")
	compareCmd.Flags().StringVar(&flags.Search, "search", "", "Free-text filter on test and group names")
	compareCmd.Flags().StringVar(&flags.Status, "any-status", "", "Keep tests where any file reports this status")
	compareCmd.Flags().StringVar(&flags.GroupBy, "group", "", "Exact group name filter")
	compareCmd.Flags().StringVar(&flags.Consistency, "consistency", "", "Keep only tests of this consistency class (consistent, inconsistent, no-data)")
	compareCmd.Flags().StringVar(&flags.SortBy, "sort-by", "", "Sort key (group, name, consistency, files)")
	compareCmd.Flags().StringVar(&flags.SortOrder, "sort-order", "", "Sort order (asc, desc)")
	compareCmd.Flags().StringVar(&flags.CSVPath, "csv", "", "Write the matrix as CSV to this path")
	compareCmd.Flags().StringVar(&flags.JSONPath, "json", "", "Write the full export document to this path")
	rootCmd.AddCommand(compareCmd)

	// Validate command
	validateCmd := &cobra.Command{
		Use:     "validate <file|url>",
		Short:   "Validate a result document against the schema",
		Long:    "Check a CQL test results document against the JSON Schema and list every violation",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Validate.Execute,
		PreRunE: applyFlags,
	}
	validateCmd.Flags().StringVar(&flags.SchemaRef, "schema", "", "Path or URL of the results JSON Schema")
	rootCmd.AddCommand(validateCmd)

	// Chart command
	chartCmd := &cobra.Command{
		Use:     "chart <file|url>",
		Short:   "Render summary charts as PNG",
		Long:    "Render the status donut and the per-group stacked bars for one result document",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Chart.Execute,
		PreRunE: applyFlags,
	}
	chartCmd.Flags().StringVar(&flags.ChartDir, "out", "", "Output directory for the PNG files")
	chartCmd.Flags().StringVar(&flags.Status, "status", "", "Filter by status before charting groups")
	chartCmd.Flags().StringVar(&flags.Search, "search", "", "Free-text filter before charting groups")
	rootCmd.AddCommand(chartCmd)

	// Index command
	indexCmd := &cobra.Command{
		Use:     "index <dir>",
		Short:   "Build an index manifest from a directory",
		Long:    "Scan a directory for result documents and write an index manifest listing them, ready for the dashboard and compare commands",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Index.Execute,
		PreRunE: applyFlags,
	}
	indexCmd.Flags().StringVar(&flags.Pattern, "pattern", "", "Only include files whose name matches this pattern (wildcards allowed)")
	indexCmd.Flags().StringVarP(&flags.OutPath, "out", "o", "", "Write the manifest to this path instead of stdout")
	rootCmd.AddCommand(indexCmd)
}
