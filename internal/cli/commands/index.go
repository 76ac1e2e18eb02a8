package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cqv/internal/config"
	"cqv/internal/discovery"
	"cqv/internal/domain"
)

// IndexCommand handles the index command
type IndexCommand struct {
	config *config.Config
	log    *zap.Logger
}

// NewIndexCommand creates a new IndexCommand
func NewIndexCommand(cfg *config.Config, log *zap.Logger) *IndexCommand {
	return &IndexCommand{
		config: cfg,
		log:    log,
	}
}

// Execute runs the command
func (ic *IndexCommand) Execute(cmd *cobra.Command, args []string) error {
	root := args[0]

	d := discovery.NewDiscoverer(config.DefaultSkipDirs, ic.config.Flags.Pattern)
	found, skipped, err := d.Discover(root)
	if err != nil {
		return err
	}
	for _, path := range skipped {
		ic.log.Warn("skipping non-result json file", zap.String("path", path))
	}

	if len(found) == 0 {
		return fmt.Errorf("no result documents found under %s", root)
	}

	// Manifest entries resolve relative to the manifest's own location
	base := filepath.Clean(root)
	if ic.config.Flags.OutPath != "" {
		base = filepath.Dir(ic.config.Flags.OutPath)
	}

	index := domain.Index{}
	for _, disc := range found {
		rel, err := filepath.Rel(base, disc.Path)
		if err != nil {
			rel = disc.Path
		}
		index.Files = append(index.Files, filepath.ToSlash(rel))
		color.Green("✓ %s — %s, %d results", disc.Path, disc.Engine, disc.Total)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	if ic.config.Flags.OutPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(ic.config.Flags.OutPath, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	color.Green("✓ wrote %s (%d files)", ic.config.Flags.OutPath, len(index.Files))
	return nil
}
