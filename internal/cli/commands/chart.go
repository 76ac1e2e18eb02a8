package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cqv/internal/charts"
	"cqv/internal/config"
	"cqv/internal/loader"
	"cqv/internal/query"
	"cqv/internal/ui"
)

// ChartCommand handles the chart command
type ChartCommand struct {
	config    *config.Config
	loader    *loader.Loader
	formatter *ui.Formatter
	log       *zap.Logger
}

// NewChartCommand creates a new ChartCommand
func NewChartCommand(cfg *config.Config, l *loader.Loader, formatter *ui.Formatter, log *zap.Logger) *ChartCommand {
	return &ChartCommand{
		config:    cfg,
		loader:    l,
		formatter: formatter,
		log:       log,
	}
}

// Execute runs the command
func (cc *ChartCommand) Execute(cmd *cobra.Command, args []string) error {
	ref := args[0]
	doc, err := cc.loader.Load(cmd.Context(), ref)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cc.config.ChartDir, 0755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	filename := loader.Filename(ref)

	donutPath := filepath.Join(cc.config.ChartDir, "status.png")
	donut, err := os.Create(donutPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer donut.Close()
	if err := charts.RenderStatusDonut(charts.StatusSeries(doc.Summary), doc.Engine.Label(filename), donut); err != nil {
		return err
	}
	color.Green("✓ wrote %s", donutPath)

	params := query.ParseParams(query.RawParams{
		Status: cc.config.Flags.Status,
		Search: cc.config.Flags.Search,
	}, cc.log)
	filtered := query.Filter(doc.Results, params.Status, params.Search)

	barsPath := filepath.Join(cc.config.ChartDir, "groups.png")
	bars, err := os.Create(barsPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer bars.Close()
	if err := charts.RenderGroupBars(charts.GroupSeries(filtered), "results by group", bars); err != nil {
		return err
	}
	color.Green("✓ wrote %s", barsPath)

	return nil
}
