package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cqv/internal/compare"
	"cqv/internal/config"
	"cqv/internal/domain"
	"cqv/internal/loader"
	"cqv/internal/ui"
)

// CompareCommand handles the compare command
type CompareCommand struct {
	config    *config.Config
	loader    *loader.Loader
	formatter *ui.Formatter
	log       *zap.Logger
}

// NewCompareCommand creates a new CompareCommand
func NewCompareCommand(cfg *config.Config, l *loader.Loader, formatter *ui.Formatter, log *zap.Logger) *CompareCommand {
	return &CompareCommand{
		config:    cfg,
		loader:    l,
		formatter: formatter,
		log:       log,
	}
}

// Execute runs the command
func (cc *CompareCommand) Execute(cmd *cobra.Command, args []string) error {
	refs := args
	if cc.config.Flags.IndexRef != "" {
		files, err := cc.loader.LoadIndex(cmd.Context(), cc.config.Flags.IndexRef)
		if err != nil {
			return err
		}
		refs = append(files, refs...)
	}
	if len(refs) < 2 {
		return fmt.Errorf("compare needs at least two result files")
	}

	fetched := cc.loader.FetchAll(cmd.Context(), refs, nil)
	if len(fetched) < 2 {
		return fmt.Errorf("fewer than two result files could be loaded")
	}

	docs := domain.NewDocumentSet()
	var included []string
	for _, f := range fetched {
		docs.Add(f.Filename, f.Doc)
		included = append(included, f.Filename)
	}

	matrix := compare.Build(docs, included)

	params := compare.ParseMatrixParams(compare.RawMatrixParams{
		Search:      cc.config.Flags.Search,
		Group:       cc.config.Flags.GroupBy,
		AnyStatus:   cc.config.Flags.Status,
		Consistency: cc.config.Flags.Consistency,
		SortBy:      cc.config.Flags.SortBy,
		SortOrder:   cc.config.Flags.SortOrder,
	}, cc.log)
	rows := compare.FilterTests(matrix.Tests, params.Filter)
	if params.SortBy != "" {
		rows = compare.SortTests(rows, params.SortBy, params.SortDesc)
	}

	exporter := compare.NewExporter(matrix, docs)

	if path := cc.config.Flags.CSVPath; path != "" {
		if err := os.WriteFile(path, []byte(exporter.CSV(rows)), 0644); err != nil {
			return fmt.Errorf("write CSV export: %w", err)
		}
		color.Green("✓ wrote %d tests to %s", len(rows), path)
	}
	if path := cc.config.Flags.JSONPath; path != "" {
		data, err := exporter.JSON(rows, params.Filter, params.SortBy, params.SortDesc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write JSON export: %w", err)
		}
		color.Green("✓ wrote %d tests to %s", len(rows), path)
	}
	if cc.config.Flags.CSVPath == "" && cc.config.Flags.JSONPath == "" {
		cc.formatter.PrintMatrix(matrix, rows, docs)
	}

	return nil
}
